// types/asteroid.go
package types

import (
	"github.com/yackko/neo-analyzer/internal/physics"
)

// Hazard thresholds applied when two asteroids are combined.
const (
	HazardMinDiameterKm = 280.0
	HazardVelocityKmS   = 5.0
)

// AsteroidObservation holds the values of one NEO record before any
// derivation.
type AsteroidObservation struct {
	ID                  string
	Name                string
	NasaJPLURL          string
	AbsoluteMagnitude   float64
	MinDiameterKm       float64
	MaxDiameterKm       float64
	IsHazardous         bool
	CloseApproachDate   string // Format: YYYY-MM-DD
	RelativeVelocityKmS float64
	MissDistanceKm      float64
}

// Asteroid is a near-Earth object. DiameterKm always equals MinDiameterKm.
type Asteroid struct {
	BodyAttributes
	ID                  string  `json:"id"`
	NasaJPLURL          string  `json:"nasaJplUrl"`
	AbsoluteMagnitude   float64 `json:"absoluteMagnitude"`
	MinDiameterKm       float64 `json:"minDiameterKm"`
	MaxDiameterKm       float64 `json:"maxDiameterKm"`
	IsHazardous         bool    `json:"isHazardous"`
	CloseApproachDate   string  `json:"closeApproachDate"`
	RelativeVelocityKmS float64 `json:"relativeVelocityKmS"`
	MissDistanceKm      float64 `json:"missDistanceKm"`
}

// NewAsteroid builds an Asteroid from an observation, estimating its mass
// from the diameter range at physics.AsteroidDensity.
func NewAsteroid(o AsteroidObservation) Asteroid {
	return Asteroid{
		BodyAttributes: BodyAttributes{
			Name:       o.Name,
			DiameterKm: o.MinDiameterKm,
			MassKg:     physics.EstimateMass(o.MinDiameterKm, o.MaxDiameterKm, physics.AsteroidDensity),
		},
		ID:                  o.ID,
		NasaJPLURL:          o.NasaJPLURL,
		AbsoluteMagnitude:   o.AbsoluteMagnitude,
		MinDiameterKm:       o.MinDiameterKm,
		MaxDiameterKm:       o.MaxDiameterKm,
		IsHazardous:         o.IsHazardous,
		CloseApproachDate:   o.CloseApproachDate,
		RelativeVelocityKmS: o.RelativeVelocityKmS,
		MissDistanceKm:      o.MissDistanceKm,
	}
}

func (a Asteroid) isBody() {}

func (a Asteroid) Kind() string { return "asteroid" }

func (a Asteroid) Attributes() BodyAttributes { return a.BodyAttributes }

func (a Asteroid) SurfaceGravity() (float64, error) {
	return physics.SurfaceGravity(a.DiameterKm, a.MassKg)
}

// ImpactEnergy returns the impact energy in megatons of TNT at the
// asteroid's relative velocity.
func (a Asteroid) ImpactEnergy() float64 {
	return physics.ImpactEnergy(a.MassKg, a.RelativeVelocityKmS)
}

func (a Asteroid) Info() []InfoField {
	hazardous := "No"
	if a.IsHazardous {
		hazardous = "Yes"
	}
	g, gErr := a.SurfaceGravity()
	return []InfoField{
		{Label: "Asteroid ID", Value: a.ID},
		{Label: "Name", Value: a.Name},
		{Label: "NASA JPL URL", Value: a.NasaJPLURL},
		floatField("Absolute Magnitude (H)", a.AbsoluteMagnitude, ""),
		floatField("Diameter (Min)", a.MinDiameterKm, "km"),
		floatField("Diameter (Max)", a.MaxDiameterKm, "km"),
		{Label: "Is Potentially Hazardous", Value: hazardous},
		{Label: "Close Approach Date", Value: a.CloseApproachDate},
		floatField("Relative Velocity", a.RelativeVelocityKmS, "km/s"),
		floatField("Miss Distance", a.MissDistanceKm, "km"),
		floatField("Mass", a.MassKg, "kg"),
		derivedField("Surface Gravity", g, gErr, "m/s^2"),
		floatField("Impact Energy", a.ImpactEnergy(), "megatons of TNT"),
	}
}

// CombineAsteroids returns a new composite asteroid built from a and b.
//
// Sizes, mass, velocity and miss distance are summed. ID, URL, absolute
// magnitude and close approach date come from a only, so the operation is not
// symmetric. The hazard flag is recomputed from the combined values.
func CombineAsteroids(a, b Asteroid) Asteroid {
	c := a
	c.Name = a.Name + " & " + b.Name
	c.MinDiameterKm = a.MinDiameterKm + b.MinDiameterKm
	c.MaxDiameterKm = a.MaxDiameterKm + b.MaxDiameterKm
	c.DiameterKm = c.MinDiameterKm
	c.MassKg = a.MassKg + b.MassKg
	c.RelativeVelocityKmS = a.RelativeVelocityKmS + b.RelativeVelocityKmS
	c.MissDistanceKm = a.MissDistanceKm + b.MissDistanceKm
	c.IsHazardous = c.MinDiameterKm > HazardMinDiameterKm || c.RelativeVelocityKmS > HazardVelocityKmS
	return c
}
