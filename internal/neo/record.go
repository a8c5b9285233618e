// internal/neo/record.go
package neo

// NeoRecord is one near-Earth object as delivered by the NeoWs feed. Pointer
// fields distinguish an absent value from a zero one.
type NeoRecord struct {
	ID                     *string            `json:"id"`
	Name                   *string            `json:"name"`
	NasaJPLURL             *string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH     *float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter      *EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardous *bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []CloseApproach    `json:"close_approach_data"`
}

// EstimatedDiameter groups the size bounds by unit. Only kilometers are read.
type EstimatedDiameter struct {
	Kilometers *DiameterRange `json:"kilometers"`
}

type DiameterRange struct {
	Min *float64 `json:"estimated_diameter_min"`
	Max *float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one recorded pass near Earth. Velocity and distance are
// numeric strings in the feed.
type CloseApproach struct {
	CloseApproachDate *string           `json:"close_approach_date"`
	RelativeVelocity  *RelativeVelocity `json:"relative_velocity"`
	MissDistance      *MissDistance     `json:"miss_distance"`
}

type RelativeVelocity struct {
	KilometersPerSecond *string `json:"kilometers_per_second"`
}

type MissDistance struct {
	Kilometers *string `json:"kilometers"`
}
