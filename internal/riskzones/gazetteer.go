package riskzones

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrInvalidGazetteer = errors.New("invalid gazetteer")

// GazetteerEntry is a named place with fixed coordinates.
type GazetteerEntry struct {
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"lat" json:"latitude"`
	Longitude float64 `yaml:"lon" json:"longitude"`
}

// Gazetteer is an ordered, read-only place table. Order decides which entry wins when
// a location matches more than one name.
type Gazetteer struct {
	entries []GazetteerEntry
}

// NewGazetteer copies entries into a Gazetteer. Names must be unique and non-empty.
func NewGazetteer(entries []GazetteerEntry) (Gazetteer, error) {
	seen := make(map[string]bool, len(entries))
	out := make([]GazetteerEntry, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return Gazetteer{}, fmt.Errorf("%w: entry %d has no name", ErrInvalidGazetteer, i+1)
		}
		if seen[name] {
			return Gazetteer{}, fmt.Errorf("%w: duplicate name %q", ErrInvalidGazetteer, name)
		}
		if e.Latitude < -90 || e.Latitude > 90 || e.Longitude < -180 || e.Longitude > 180 {
			return Gazetteer{}, fmt.Errorf("%w: %q has out-of-range coordinates", ErrInvalidGazetteer, name)
		}
		seen[name] = true
		e.Name = name
		out = append(out, e)
	}
	return Gazetteer{entries: out}, nil
}

// DefaultGazetteer is the curated table of the most frequent crash locations.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{entries: []GazetteerEntry{
		{"Sao Paulo, Brazil", -23.5505, -46.6333},
		{"Moscow, Russia", 55.7558, 37.6173},
		{"Rio de Janeiro, Brazil", -22.9068, -43.1729},
		{"Bogota, Colombia", 4.7110, -74.0721},
		{"Manila, Philippines", 14.5995, 120.9842},
		{"Anchorage, Alaska", 61.2181, -149.9003},
		{"New York, New York", 40.7128, -74.0060},
		{"Cairo, Egypt", 30.0444, 31.2357},
		{"Chicago, Illinois", 41.8781, -87.6298},
		{"Near Moscow, Russia", 55.5, 37.6},
		{"Atlantic Ocean", 25.0, -40.0},
		{"Tehran, Iran", 35.6892, 51.3890},
		{"Paris, France", 48.8566, 2.3522},
		{"Amsterdam, Netherlands", 52.3676, 4.9041},
		{"Denver, Colorado", 39.7392, -104.9903},
		{"Ankara, Turkey", 39.9334, 32.8597},
		{"Rome, Italy", 41.9028, 12.4964},
		{"Cleveland, Ohio", 41.4993, -81.6944},
		{"Bucharest, Romania", 44.4268, 26.1025},
		{"Burbank, California", 34.1808, -118.3089},
	}}
}

// LoadGazetteer reads a YAML list of {name, lat, lon} entries. File order is match order.
func LoadGazetteer(path string) (Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Gazetteer{}, fmt.Errorf("reading gazetteer: %w", err)
	}

	var entries []GazetteerEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return Gazetteer{}, fmt.Errorf("parsing gazetteer: %w", err)
	}
	if len(entries) == 0 {
		return Gazetteer{}, fmt.Errorf("%w: %s has no entries", ErrInvalidGazetteer, path)
	}
	return NewGazetteer(entries)
}

// Entries returns a copy of the table in match order.
func (g Gazetteer) Entries() []GazetteerEntry {
	return append([]GazetteerEntry(nil), g.entries...)
}

func (g Gazetteer) Len() int { return len(g.entries) }

// Match returns the first entry whose name contains location or is contained by it.
// Matching is case-sensitive.
func (g Gazetteer) Match(location string) (GazetteerEntry, bool) {
	if location == "" {
		return GazetteerEntry{}, false
	}
	for _, e := range g.entries {
		if strings.Contains(location, e.Name) || strings.Contains(e.Name, location) {
			return e, true
		}
	}
	return GazetteerEntry{}, false
}
