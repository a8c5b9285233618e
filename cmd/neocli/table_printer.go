// cmd/neocli/table_printer.go
package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yackko/neo-analyzer/tui"
	"github.com/yackko/neo-analyzer/types"
)

// printInfo writes a body's info listing, one labelled value per line.
func printInfo(w io.Writer, b types.Body) {
	for _, f := range b.Info() {
		if f.Label == "Is Potentially Hazardous" && f.Value == "Yes" {
			fmt.Fprintf(w, "%s: %s\n", f.Label, tui.HazardStyle.Render(f.Value))
			continue
		}
		fmt.Fprintln(w, f.String())
	}
}

// printAsteroidsTable formats asteroids as an aligned table.
func printAsteroidsTable(out io.Writer, asteroids []types.Asteroid) {
	if len(asteroids) == 0 {
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMIN (km)\tMAX (km)\tHAZARDOUS\tAPPROACH\tVELOCITY (km/s)\tMISS (km)\tMASS (kg)\tIMPACT (Mt TNT)")
	fmt.Fprintln(w, "--\t----\t--------\t--------\t---------\t--------\t---------------\t---------\t---------\t---------------")
	for _, a := range asteroids {
		hazardous := "No"
		if a.IsHazardous {
			hazardous = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%s\t%s\t%.3f\t%.0f\t%.4g\t%.4g\n",
			a.ID, a.Name, a.MinDiameterKm, a.MaxDiameterKm, hazardous, a.CloseApproachDate,
			a.RelativeVelocityKmS, a.MissDistanceKm, a.MassKg, a.ImpactEnergy())
	}
	w.Flush()
}

// printPlanetsTable formats planets with their derived values.
func printPlanetsTable(out io.Writer, planets []types.Planet) {
	if len(planets) == 0 {
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIAMETER (km)\tMASS (kg)\tGRAVITY (m/s^2)\tESCAPE (km/s)")
	fmt.Fprintln(w, "----\t-------------\t---------\t---------------\t-------------")
	for _, p := range planets {
		gravity, escape := "undefined", "undefined"
		if g, err := p.SurfaceGravity(); err == nil {
			gravity = fmt.Sprintf("%.2f", g)
		}
		if v, err := p.EscapeVelocity(); err == nil {
			escape = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.4g\t%s\t%s\n", p.Name, p.DiameterKm, p.MassKg, gravity, escape)
	}
	w.Flush()
}
