// internal/neo/parser.go
package neo

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yackko/neo-analyzer/internal/config"
	"github.com/yackko/neo-analyzer/types"
)

// Field paths reported in RecordError.
const (
	fieldID                = "id"
	fieldName              = "name"
	fieldAbsoluteMagnitude = "absolute_magnitude_h"
	fieldDiameterMin       = "estimated_diameter.kilometers.estimated_diameter_min"
	fieldDiameterMax       = "estimated_diameter.kilometers.estimated_diameter_max"
	fieldHazardous         = "is_potentially_hazardous_asteroid"
	fieldCloseApproach     = "close_approach_data[0]"
	fieldApproachDate      = "close_approach_data[0].close_approach_date"
	fieldVelocity          = "close_approach_data[0].relative_velocity.kilometers_per_second"
	fieldMissDistance      = "close_approach_data[0].miss_distance.kilometers"
)

// DecodeRecord unmarshals one raw NEO record. A JSON value of the wrong type
// is reported as ErrTypeMismatch.
func DecodeRecord(data []byte) (NeoRecord, error) {
	var rec NeoRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return NeoRecord{}, fieldError(typeErr.Field, ErrTypeMismatch, err)
		}
		return NeoRecord{}, fieldError("$", ErrTypeMismatch, err)
	}
	return rec, nil
}

// Parse converts a record into an Asteroid. Only the first close approach is
// used. Either a complete Asteroid or an error is returned.
func Parse(rec NeoRecord) (types.Asteroid, error) {
	if rec.ID == nil {
		return types.Asteroid{}, fieldError(fieldID, ErrFieldMissing, nil)
	}
	if rec.Name == nil {
		return types.Asteroid{}, fieldError(fieldName, ErrFieldMissing, nil)
	}
	if rec.AbsoluteMagnitudeH == nil {
		return types.Asteroid{}, fieldError(fieldAbsoluteMagnitude, ErrFieldMissing, nil)
	}

	var minKm, maxKm *float64
	if rec.EstimatedDiameter != nil && rec.EstimatedDiameter.Kilometers != nil {
		minKm = rec.EstimatedDiameter.Kilometers.Min
		maxKm = rec.EstimatedDiameter.Kilometers.Max
	}
	if minKm == nil {
		return types.Asteroid{}, fieldError(fieldDiameterMin, ErrFieldMissing, nil)
	}
	if maxKm == nil {
		return types.Asteroid{}, fieldError(fieldDiameterMax, ErrFieldMissing, nil)
	}
	if !(*minKm > 0) {
		return types.Asteroid{}, fieldError(fieldDiameterMin, ErrInvalidValue, errors.New("diameter must be positive"))
	}
	if *maxKm < *minKm {
		return types.Asteroid{}, fieldError(fieldDiameterMax, ErrInvalidValue, errors.New("maximum diameter below minimum"))
	}

	if rec.IsPotentiallyHazardous == nil {
		return types.Asteroid{}, fieldError(fieldHazardous, ErrFieldMissing, nil)
	}

	if len(rec.CloseApproachData) == 0 {
		return types.Asteroid{}, fieldError(fieldCloseApproach, ErrFieldMissing, nil)
	}
	approach := rec.CloseApproachData[0]
	if approach.CloseApproachDate == nil {
		return types.Asteroid{}, fieldError(fieldApproachDate, ErrFieldMissing, nil)
	}
	if _, err := time.Parse(config.DateFormat, *approach.CloseApproachDate); err != nil {
		return types.Asteroid{}, fieldError(fieldApproachDate, ErrInvalidValue, err)
	}

	var velocityStr, missStr *string
	if approach.RelativeVelocity != nil {
		velocityStr = approach.RelativeVelocity.KilometersPerSecond
	}
	if approach.MissDistance != nil {
		missStr = approach.MissDistance.Kilometers
	}
	velocity, err := parseNonNegative(fieldVelocity, velocityStr)
	if err != nil {
		return types.Asteroid{}, err
	}
	miss, err := parseNonNegative(fieldMissDistance, missStr)
	if err != nil {
		return types.Asteroid{}, err
	}

	var url string
	if rec.NasaJPLURL != nil {
		url = *rec.NasaJPLURL
	}

	return types.NewAsteroid(types.AsteroidObservation{
		ID:                  *rec.ID,
		Name:                *rec.Name,
		NasaJPLURL:          url,
		AbsoluteMagnitude:   *rec.AbsoluteMagnitudeH,
		MinDiameterKm:       *minKm,
		MaxDiameterKm:       *maxKm,
		IsHazardous:         *rec.IsPotentiallyHazardous,
		CloseApproachDate:   *approach.CloseApproachDate,
		RelativeVelocityKmS: velocity,
		MissDistanceKm:      miss,
	}), nil
}

// ParseRecord decodes and parses a raw record in one step.
func ParseRecord(data []byte) (types.Asteroid, error) {
	rec, err := DecodeRecord(data)
	if err != nil {
		return types.Asteroid{}, err
	}
	return Parse(rec)
}

// parseNonNegative reads a numeric string field.
func parseNonNegative(field string, s *string) (float64, error) {
	if s == nil {
		return 0, fieldError(field, ErrFieldMissing, nil)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return 0, fieldError(field, ErrNumericParse, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fieldError(field, ErrNumericParse, errors.New("not a finite number"))
	}
	if v < 0 {
		return 0, fieldError(field, ErrInvalidValue, errors.New("negative value"))
	}
	return v, nil
}
