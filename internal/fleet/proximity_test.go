package fleet

import (
	"math"
	"testing"
)

func TestAtRisk_NearestContainingZone(t *testing.T) {
	lat, lon := 48.9, 2.4
	far, farLon := 0.0, 0.0
	aircraft := []AircraftState{
		{Identifier: "near", Latitude: &lat, Longitude: &lon},
		{Identifier: "far", Latitude: &far, Longitude: &farLon},
		{Identifier: "nopos"},
	}
	zones := []ZoneArea{
		{Name: "Wide", Lat: 50.0, Lon: 2.0, RadiusKM: 500},
		{Name: "Paris, France", Lat: 48.8566, Lon: 2.3522, RadiusKM: 100},
	}

	got := AtRisk(aircraft, zones)
	if len(got) != 1 || got[0].Zone != "Paris, France" || got[0].Aircraft.Identifier != "near" {
		t.Fatalf("unexpected contacts: %+v", got)
	}
	if got[0].DistanceKM <= 0 || got[0].DistanceKM > 10 || math.IsNaN(got[0].DistanceKM) {
		t.Errorf("distance: %v", got[0].DistanceKM)
	}

	if out := AtRisk(aircraft, nil); out == nil || len(out) != 0 {
		t.Errorf("no zones should be an empty list, got %v", out)
	}
}
