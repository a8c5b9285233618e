// internal/physics/constants.go
package physics

const (
	// G is the gravitational constant in m^3 kg^-1 s^-2.
	G = 6.67430e-11

	// JoulesPerMegatonTNT converts kinetic energy to megatons of TNT.
	JoulesPerMegatonTNT = 4.184e15

	// AsteroidDensity is the assumed bulk density of a stony asteroid in kg/m^3.
	// The NEO feed carries no composition data.
	AsteroidDensity = 3000.0

	metersPerKm = 1000.0
)
