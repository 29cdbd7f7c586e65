package fleet

import (
	"sort"

	"github.com/skypies/geo"
)

// ZoneArea is a circular hazard area around a risk zone.
type ZoneArea struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKM float64 `json:"radiusKm"`
}

// ZoneSource supplies the current hazard areas; nil means none are loaded.
type ZoneSource func() []ZoneArea

// RiskContact is an aircraft currently inside a zone area.
type RiskContact struct {
	Aircraft   AircraftState `json:"aircraft"`
	Zone       string        `json:"zone"`
	DistanceKM float64       `json:"distanceKm"`
}

// AtRisk pairs each aircraft with the nearest zone whose radius contains it.
// Results are ordered by distance.
func AtRisk(aircraft []AircraftState, zones []ZoneArea) []RiskContact {
	out := []RiskContact{}
	if len(zones) == 0 {
		return out
	}

	for _, a := range aircraft {
		if a.Latitude == nil || a.Longitude == nil {
			continue
		}
		pos := geo.Latlong{Lat: *a.Latitude, Long: *a.Longitude}

		best, bestDist := -1, 0.0
		for i, z := range zones {
			d := pos.DistKM(geo.Latlong{Lat: z.Lat, Long: z.Lon})
			if d > z.RadiusKM {
				continue
			}
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			out = append(out, RiskContact{Aircraft: a, Zone: zones[best].Name, DistanceKM: bestDist})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })
	return out
}
