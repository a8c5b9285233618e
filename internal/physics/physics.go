// internal/physics/physics.go
package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonPositiveDiameter is returned by the radius-based formulas when a body
// has no usable size. A zero radius would otherwise divide by zero.
var ErrNonPositiveDiameter = errors.New("diameter must be a positive finite number")

// radiusMeters converts a diameter in km to a radius in meters.
func radiusMeters(diameterKm float64) (float64, error) {
	if !(diameterKm > 0) || math.IsInf(diameterKm, 0) {
		return 0, fmt.Errorf("%w (got %g km)", ErrNonPositiveDiameter, diameterKm)
	}
	return diameterKm * metersPerKm / 2, nil
}

// SurfaceGravity returns the surface gravity in m/s^2 of a spherical body.
func SurfaceGravity(diameterKm, massKg float64) (float64, error) {
	r, err := radiusMeters(diameterKm)
	if err != nil {
		return 0, err
	}
	return G * massKg / (r * r), nil
}

// EscapeVelocity returns the escape velocity at the surface in km/s.
func EscapeVelocity(diameterKm, massKg float64) (float64, error) {
	r, err := radiusMeters(diameterKm)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(2*G*massKg/r) / metersPerKm, nil
}

// ImpactEnergy returns the kinetic energy, in megatons of TNT, of a body of
// the given mass striking at the given relative velocity.
func ImpactEnergy(massKg, velocityKmS float64) float64 {
	v := velocityKmS * metersPerKm
	return 0.5 * massKg * v * v / JoulesPerMegatonTNT
}

// EstimateMass derives a mass in kg from a diameter range in km.
//
// Each bound is treated as the diameter of a sphere and the two volumes are
// averaged before applying the density. This weights both size extremes
// equally; it is not the volume of the mean diameter.
func EstimateMass(minDiameterKm, maxDiameterKm, densityKgM3 float64) float64 {
	return densityKgM3 * (sphereVolume(minDiameterKm) + sphereVolume(maxDiameterKm)) / 2
}

func sphereVolume(diameterKm float64) float64 {
	r := diameterKm * metersPerKm / 2
	return 4.0 / 3.0 * math.Pi * r * r * r
}
