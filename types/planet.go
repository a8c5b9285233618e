// types/planet.go
package types

import (
	"fmt"

	"github.com/yackko/neo-analyzer/internal/physics"
)

// Planet is a solar-system planet from the catalog.
type Planet struct {
	BodyAttributes
}

// NewPlanet validates the catalog values and returns a Planet.
func NewPlanet(name string, diameterKm, massKg float64) (Planet, error) {
	if name == "" {
		return Planet{}, fmt.Errorf("planet name cannot be empty")
	}
	if !(diameterKm > 0) {
		return Planet{}, fmt.Errorf("planet %s: %w (got %g km)", name, physics.ErrNonPositiveDiameter, diameterKm)
	}
	if massKg < 0 {
		return Planet{}, fmt.Errorf("planet %s: mass cannot be negative (got %g kg)", name, massKg)
	}
	return Planet{BodyAttributes{Name: name, DiameterKm: diameterKm, MassKg: massKg}}, nil
}

func (p Planet) isBody() {}

func (p Planet) Kind() string { return "planet" }

func (p Planet) Attributes() BodyAttributes { return p.BodyAttributes }

func (p Planet) SurfaceGravity() (float64, error) {
	return physics.SurfaceGravity(p.DiameterKm, p.MassKg)
}

// EscapeVelocity returns the surface escape velocity in km/s.
func (p Planet) EscapeVelocity() (float64, error) {
	return physics.EscapeVelocity(p.DiameterKm, p.MassKg)
}

func (p Planet) Info() []InfoField {
	g, gErr := p.SurfaceGravity()
	v, vErr := p.EscapeVelocity()
	return []InfoField{
		{Label: "Planet Name", Value: p.Name},
		floatField("Mass", p.MassKg, "kg"),
		floatField("Diameter", p.DiameterKm, "km"),
		derivedField("Surface Gravity", g, gErr, "m/s^2"),
		derivedField("Escape Velocity", v, vErr, "km/s"),
	}
}
