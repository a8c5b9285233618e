package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yackko/neo-analyzer/internal/datastore"
	"github.com/yackko/neo-analyzer/internal/physics"
	"github.com/yackko/neo-analyzer/types"
)

const feedFixture = "../../internal/neo/testdata/feed.json"

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with a fresh viper and flag state.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	t.Setenv("NEOCLI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func offlineArgs(t *testing.T, args ...string) []string {
	t.Helper()
	return append(args, "--offline", "--no-cache", "--fallback-file", feedFixture,
		"--cache-path", filepath.Join(t.TempDir(), "cache.db"))
}

func TestExplain(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"neo", "Near-Earth Object"},
		{"impact-energy", "megatons of TNT"},
		{"Surface Gravity", "6.67430e-11"},
		{"COMBINATION", "recomputed"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			out, _, err := execute(t, "explain", tt.term)
			if err != nil {
				t.Fatalf("explain %q: %v", tt.term, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("explain %q = %q, want it to contain %q", tt.term, out, tt.want)
			}
		})
	}
}

func TestExplain_Unknown(t *testing.T) {
	_, errOut, err := execute(t, "explain", "comet-tail")
	if err == nil {
		t.Fatal("expected an error for an unknown term")
	}
	if !strings.Contains(errOut, "Supported terms are:") || !strings.Contains(errOut, "  - neo") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestAsteroid_JSONFromFallback(t *testing.T) {
	out, _, err := execute(t, offlineArgs(t, "asteroid", "2024-03-15")...)
	if err != nil {
		t.Fatalf("asteroid: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["name"] != "415949 (2001 XY10)" {
		t.Errorf("name = %v", got["name"])
	}
	if got["closeApproachDate"] != "2024-03-15" {
		t.Errorf("closeApproachDate = %v", got["closeApproachDate"])
	}
	if e, ok := got["impactEnergyMt"].(float64); !ok || e <= 0 {
		t.Errorf("impactEnergyMt = %v", got["impactEnergyMt"])
	}
	if _, ok := got["surfaceGravity"]; !ok {
		t.Error("surfaceGravity missing")
	}
}

func TestAsteroid_Metrics(t *testing.T) {
	out, _, err := execute(t, offlineArgs(t, "asteroid", "2024-03-15", "--index", "1", "--metric", "impact")...)
	if err != nil {
		t.Fatalf("asteroid: %v", err)
	}
	if !strings.HasPrefix(out, "Impact Energy: ") || !strings.Contains(out, "megatons of TNT") {
		t.Errorf("output = %q", out)
	}

	out, _, err = execute(t, offlineArgs(t, "asteroid", "2024-03-15", "--metric", "gravity")...)
	if err != nil {
		t.Fatalf("asteroid: %v", err)
	}
	if !strings.HasPrefix(out, "Surface Gravity: ") {
		t.Errorf("output = %q", out)
	}

	if _, _, err := execute(t, offlineArgs(t, "asteroid", "2024-03-15", "--metric", "albedo")...); err == nil {
		t.Error("unknown metric accepted")
	}
}

func TestAsteroid_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"index out of range", offlineArgs(t, "asteroid", "2024-03-15", "--index", "5")},
		{"date not in feed", offlineArgs(t, "asteroid", "2024-03-16")},
		{"bad output format", offlineArgs(t, "asteroid", "2024-03-15", "-O", "xml")},
		{"no fallback file", []string{"asteroid", "2024-03-15", "--offline", "--no-cache", "--fallback-file", filepath.Join(t.TempDir(), "missing.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAsteroid_AllTable(t *testing.T) {
	out, _, err := execute(t, offlineArgs(t, "asteroid", "2024-03-15", "--all", "-O", "table")...)
	if err != nil {
		t.Fatalf("asteroid --all: %v", err)
	}
	first := strings.Index(out, "(2015 RC)")
	second := strings.Index(out, "415949 (2001 XY10)")
	if first < 0 || second < 0 || first > second {
		t.Errorf("table not sorted by name:\n%s", out)
	}
}

func TestCombine_JSON(t *testing.T) {
	out, _, err := execute(t, offlineArgs(t, "combine", "2024-03-15", "2024-03-15", "--index2", "1")...)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	var got struct {
		First    types.Asteroid `json:"first"`
		Second   types.Asteroid `json:"second"`
		Combined types.Asteroid `json:"combined"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if want := "415949 (2001 XY10) & (2015 RC)"; got.Combined.Name != want {
		t.Errorf("combined name = %q, want %q", got.Combined.Name, want)
	}
	if got.Combined.ID != got.First.ID {
		t.Errorf("combined ID = %q, want first ID %q", got.Combined.ID, got.First.ID)
	}
	if !got.Combined.IsHazardous {
		t.Error("combined velocity exceeds 5 km/s but asteroid is not hazardous")
	}
	if got.Combined.DiameterKm != got.Combined.MinDiameterKm {
		t.Errorf("diameter %v != min diameter %v", got.Combined.DiameterKm, got.Combined.MinDiameterKm)
	}
}

func TestPlanets(t *testing.T) {
	out, _, err := execute(t, "planets", "-O", "table")
	if err != nil {
		t.Fatalf("planets: %v", err)
	}
	for _, want := range []string{"Mercury", "Earth", "Neptune", "9.8"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	catalogFile := filepath.Join(t.TempDir(), "planets.csv")
	if err := os.WriteFile(catalogFile, []byte("name,diameter_km,mass_kg\nVulcan,10000,5e24\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "planets", "--catalog", catalogFile, "-O", "json")
	if err != nil {
		t.Fatalf("planets --catalog: %v", err)
	}
	var reports []map[string]any
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(reports) != 1 || reports[0]["name"] != "Vulcan" || reports[0]["escapeVelocity"] == nil {
		t.Errorf("reports = %v", reports)
	}
}

func TestCache_ListExport(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.db")

	out, _, err := execute(t, "cache", "list", "--cache-path", cachePath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "is empty") {
		t.Errorf("output = %q", out)
	}

	raw, err := os.ReadFile(feedFixture)
	if err != nil {
		t.Fatal(err)
	}
	store, err := datastore.Open(log.NewNopLogger(), cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put("2024-03-15", raw); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	out, _, err = execute(t, "cache", "list", "--cache-path", cachePath)
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "2024-03-15") {
		t.Errorf("output = %q", out)
	}

	exported := filepath.Join(dir, "export.json")
	if _, _, err := execute(t, "cache", "export", "2024-03-15", exported, "--cache-path", cachePath); err != nil {
		t.Fatalf("cache export: %v", err)
	}
	if _, err := datastore.LoadFallback(exported); err != nil {
		t.Errorf("exported feed unreadable: %v", err)
	}

	if _, _, err := execute(t, "cache", "export", "1999-01-01", exported, "--cache-path", cachePath); err == nil {
		t.Error("exporting an uncached date succeeded")
	}

	out, _, err = execute(t, "cache", "purge", "--cache-path", cachePath)
	if err != nil {
		t.Fatalf("cache purge: %v", err)
	}
	if !strings.Contains(out, "Removed 1 cached feed(s).") {
		t.Errorf("output = %q", out)
	}
}

func TestPrintInfo_UndefinedGravity(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, types.NewAsteroid(types.AsteroidObservation{Name: "Dust", RelativeVelocityKmS: 1}))
	if !strings.Contains(buf.String(), "Surface Gravity: undefined") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewAsteroidReport_OmitsUndefinedGravity(t *testing.T) {
	r := newAsteroidReport(types.NewAsteroid(types.AsteroidObservation{Name: "Dust"}))
	if r.SurfaceGravity != nil {
		t.Errorf("SurfaceGravity = %v, want nil", *r.SurfaceGravity)
	}
}

func TestPrintAsteroidMetric_GravityOfZeroSizeSilencesUsage(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := printAsteroidMetric(cmd, types.NewAsteroid(types.AsteroidObservation{Name: "Dust"}), "gravity", "json")
	if !errors.Is(err, physics.ErrNonPositiveDiameter) {
		t.Fatalf("err = %v, want ErrNonPositiveDiameter", err)
	}
	if !cmd.SilenceUsage {
		t.Error("usage not silenced for a zero-size asteroid")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestAsteroid_AllSkipsMalformedRecords(t *testing.T) {
	raw, err := os.ReadFile(feedFixture)
	if err != nil {
		t.Fatal(err)
	}
	var f struct {
		NearEarthObjects map[string][]json.RawMessage `json:"near_earth_objects"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatal(err)
	}
	records := f.NearEarthObjects["2024-03-15"]
	f.NearEarthObjects["2024-03-15"] = []json.RawMessage{json.RawMessage(`{"id": "1"}`), records[1]}
	mixed, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	fallback := filepath.Join(t.TempDir(), "mixed.json")
	if err := os.WriteFile(fallback, mixed, 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "asteroid", "2024-03-15", "--all", "-O", "table",
		"--offline", "--no-cache", "--fallback-file", fallback)
	if err != nil {
		t.Fatalf("asteroid --all: %v", err)
	}
	if !strings.Contains(out, "(2015 RC)") {
		t.Errorf("well-formed record missing:\n%s", out)
	}

	onlyBad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(onlyBad, []byte(`{"near_earth_objects": {"2024-03-15": [{"id": "1"}]}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "asteroid", "2024-03-15", "--all", "--offline", "--no-cache", "--fallback-file", onlyBad); err == nil {
		t.Error("a date with no well-formed record succeeded")
	}
}
