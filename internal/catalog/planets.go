// internal/catalog/planets.go
package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/gocarina/gocsv"
	"github.com/pelletier/go-toml/v2"

	"github.com/yackko/neo-analyzer/types"
)

// Entry is one catalog row.
type Entry struct {
	Name       string  `csv:"name" toml:"name"`
	DiameterKm float64 `csv:"diameter_km" toml:"diameter_km"`
	MassKg     float64 `csv:"mass_kg" toml:"mass_kg"`
}

// tomlCatalog is the TOML file layout: a list of [[planet]] tables.
type tomlCatalog struct {
	Planets []Entry `toml:"planet"`
}

// Default returns the built-in solar-system planets.
func Default() []Entry {
	return []Entry{
		{Name: "Mercury", DiameterKm: 4879, MassKg: 3.3011e23},
		{Name: "Venus", DiameterKm: 12104, MassKg: 4.8675e24},
		{Name: "Earth", DiameterKm: 12742, MassKg: 5.97237e24},
		{Name: "Mars", DiameterKm: 6779, MassKg: 6.4171e23},
		{Name: "Jupiter", DiameterKm: 139820, MassKg: 1.8982e27},
		{Name: "Saturn", DiameterKm: 116460, MassKg: 5.6834e26},
		{Name: "Uranus", DiameterKm: 50724, MassKg: 8.6810e25},
		{Name: "Neptune", DiameterKm: 49244, MassKg: 1.02413e26},
	}
}

// LoadFile reads catalog entries from a .csv or .toml file.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open planet catalog: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return DecodeCSV(f)
	case ".toml":
		return DecodeTOML(f)
	default:
		return nil, fmt.Errorf("unsupported planet catalog format '%s' (use .csv or .toml)", ext)
	}
}

// DecodeCSV reads a catalog with a name,diameter_km,mass_kg header.
func DecodeCSV(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(utfbom.SkipOnly(r), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode CSV planet catalog: %w", err)
	}
	return entries, nil
}

// DecodeTOML reads a catalog of [[planet]] tables.
func DecodeTOML(r io.Reader) ([]Entry, error) {
	var c tomlCatalog
	dec := toml.NewDecoder(utfbom.SkipOnly(r))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode TOML planet catalog: %w", err)
	}
	return c.Planets, nil
}

// Planets builds Planet values from entries. Any invalid entry fails the
// whole list.
func Planets(entries []Entry) ([]types.Planet, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("planet catalog is empty")
	}
	planets := make([]types.Planet, 0, len(entries))
	for i, e := range entries {
		p, err := types.NewPlanet(strings.TrimSpace(e.Name), e.DiameterKm, e.MassKg)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		planets = append(planets, p)
	}
	return planets, nil
}

// Load returns the planets from path, or the built-in catalog when path is
// empty.
func Load(path string) ([]types.Planet, error) {
	entries := Default()
	if path != "" {
		var err error
		if entries, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	return Planets(entries)
}
