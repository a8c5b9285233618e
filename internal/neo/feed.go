// internal/neo/feed.go
package neo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yackko/neo-analyzer/types"
)

// Feed is a NeoWs feed response. Records stay raw until selected so that one
// malformed entry does not spoil the whole feed.
type Feed struct {
	ElementCount     int                          `json:"element_count"`
	NearEarthObjects map[string][]json.RawMessage `json:"near_earth_objects"`
}

// DecodeFeed unmarshals a feed response.
func DecodeFeed(data []byte) (Feed, error) {
	var f Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return Feed{}, fmt.Errorf("failed to decode NEO feed: %w", err)
	}
	return f, nil
}

// Dates returns the dates present in the feed, sorted.
func (f Feed) Dates() []string {
	dates := make([]string, 0, len(f.NearEarthObjects))
	for d := range f.NearEarthObjects {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Count returns the number of records listed for date.
func (f Feed) Count(date string) int {
	return len(f.NearEarthObjects[date])
}

// Select returns the record at index for date.
func (f Feed) Select(date string, index int) (NeoRecord, error) {
	records := f.NearEarthObjects[date]
	if len(records) == 0 {
		return NeoRecord{}, fmt.Errorf("%w for date %s", ErrNoRecord, date)
	}
	if index < 0 || index >= len(records) {
		return NeoRecord{}, fmt.Errorf("%w at index %d for date %s (%d available)", ErrNoRecord, index, date, len(records))
	}
	return DecodeRecord(records[index])
}

// Asteroid selects and parses the record at index for date.
func (f Feed) Asteroid(date string, index int) (types.Asteroid, error) {
	rec, err := f.Select(date, index)
	if err != nil {
		return types.Asteroid{}, err
	}
	return Parse(rec)
}

// Asteroids parses every record listed for date. Malformed records are left
// out and reported in skipped, one error per record.
func (f Feed) Asteroids(date string) (asteroids []types.Asteroid, skipped []error) {
	records := f.NearEarthObjects[date]
	asteroids = make([]types.Asteroid, 0, len(records))
	for i, raw := range records {
		a, err := ParseRecord(raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d for %s: %w", i, date, err))
			continue
		}
		asteroids = append(asteroids, a)
	}
	return asteroids, skipped
}
