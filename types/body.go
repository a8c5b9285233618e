// types/body.go
package types

import "fmt"

// Body is a physical body in the solar system. It is implemented only by
// Planet and Asteroid.
type Body interface {
	Attributes() BodyAttributes
	// SurfaceGravity returns m/s^2, or physics.ErrNonPositiveDiameter.
	SurfaceGravity() (float64, error)
	// Info lists the stored and derived values shown to users.
	Info() []InfoField
	Kind() string

	isBody()
}

// BodyAttributes are the values shared by every body.
type BodyAttributes struct {
	Name       string  `json:"name"`
	DiameterKm float64 `json:"diameterKm"`
	MassKg     float64 `json:"massKg"`
}

// InfoField is one labelled value of a body's info listing.
type InfoField struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

func (f InfoField) String() string {
	if f.Unit == "" {
		return fmt.Sprintf("%s: %s", f.Label, f.Value)
	}
	return fmt.Sprintf("%s: %s %s", f.Label, f.Value, f.Unit)
}

func floatField(label string, v float64, unit string) InfoField {
	return InfoField{Label: label, Value: fmt.Sprintf("%g", v), Unit: unit}
}

// derivedField renders a computed value, or "undefined" when the formula
// rejected the body.
func derivedField(label string, v float64, err error, unit string) InfoField {
	if err != nil {
		return InfoField{Label: label, Value: "undefined"}
	}
	return floatField(label, v, unit)
}
