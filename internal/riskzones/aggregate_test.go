package riskzones

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func incident(location, summary string, fatalities int) IncidentRecord {
	return IncidentRecord{
		Date:       "01/01/2000",
		Location:   location,
		Operator:   "Op",
		Fatalities: FieldInt{Value: fatalities},
		Summary:    summary,
	}
}

func TestClassify(t *testing.T) {
	rules := DefaultCauseRules()

	tests := []struct {
		summary string
		want    []Cause
	}{
		{"", nil},
		{"Crashed in FOG near a Mountain", []Cause{CauseFog, CauseMountainousTerrain}},
		{"Heavy rain and snow", []Cause{CauseSevereWeather}},
		{"Shot down by missile, fire on impact", []Cause{CauseConflict, CauseFire}},
		{"engine fire over ocean", []Cause{CauseEngineFailure, CauseFire}},
		{"Aircraft stalled on approach", []Cause{CauseStall}},
		{"Landed short", nil},
	}
	for _, tc := range tests {
		if got := rules.Classify(tc.summary); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Classify(%q) = %v, want %v", tc.summary, got, tc.want)
		}
	}
}

func TestAggregate_FogAndMountainBothCount(t *testing.T) {
	zones, _ := NewAggregator().Aggregate([]IncidentRecord{
		incident("Bogota, Colombia", "Struck a mountain in dense fog", 30),
	})
	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(zones))
	}
	c := zones[0].CauseCounts
	if c[CauseFog] != 1 || c[CauseMountainousTerrain] != 1 {
		t.Errorf("expected Fog and Mountainous Terrain, got %v", c)
	}
	// Tie at 1: Fog comes first in rule order.
	if zones[0].PrimaryCause != CauseFog {
		t.Errorf("primary cause: got %q", zones[0].PrimaryCause)
	}
}

func TestAggregate_RioScenario(t *testing.T) {
	zones, stats := NewAggregator().Aggregate([]IncidentRecord{
		incident("Rio de Janeiro, Brazil", "engine fire over ocean", 10),
		incident("Rio de Janeiro, Brazil", "stall on approach", 5),
	})
	if len(zones) != 1 || stats.Matched != 2 {
		t.Fatalf("expected one zone from two matches, got %d zones %+v", len(zones), stats)
	}
	z := zones[0]

	if z.IncidentCount != 2 || z.TotalFatalities != 15 {
		t.Errorf("counts: incidents=%d fatalities=%d", z.IncidentCount, z.TotalFatalities)
	}
	want := map[Cause]int{CauseEngineFailure: 1, CauseFire: 1, CauseStall: 1}
	if !reflect.DeepEqual(z.CauseCounts, want) {
		t.Errorf("causeCounts: got %v, want %v", z.CauseCounts, want)
	}
	if z.PrimaryCause != CauseEngineFailure {
		t.Errorf("primary cause: got %q, want Engine Failure", z.PrimaryCause)
	}
	if math.Abs(z.RiskIntensity-2.0/15.0) > 1e-12 {
		t.Errorf("intensity: got %v", z.RiskIntensity)
	}
	if z.Description != "High risk zone with 2 recorded incidents. Primary factor: Engine Failure." {
		t.Errorf("description: got %q", z.Description)
	}
	if z.Latitude != -22.9068 || z.Longitude != -43.1729 {
		t.Errorf("coordinates not copied from gazetteer: %v,%v", z.Latitude, z.Longitude)
	}
	if z.IncidentSamples[0].Summary != "engine fire over ocean" || z.IncidentSamples[1].Summary != "stall on approach" {
		t.Errorf("samples not in input order: %+v", z.IncidentSamples)
	}
}

func TestAggregate_UnknownCauseAndUnmatched(t *testing.T) {
	zones, stats := NewAggregator().Aggregate([]IncidentRecord{
		incident("Lagos, Nigeria", "fog", 1),
		incident("Tehran, Iran", "", 3),
		incident("", "fog", 1),
	})
	if stats.Unmatched != 2 || len(zones) != 1 {
		t.Fatalf("unexpected result: %+v zones=%d", stats, len(zones))
	}
	if zones[0].PrimaryCause != CauseUnknown {
		t.Errorf("expected Unknown, got %q", zones[0].PrimaryCause)
	}
	if zones[0].Description != "High risk zone with 1 recorded incidents. Primary factor: Unknown." {
		t.Errorf("description: got %q", zones[0].Description)
	}
}

func TestAggregate_ZonesInCreationOrder(t *testing.T) {
	zones, _ := NewAggregator().Aggregate([]IncidentRecord{
		incident("Paris, France", "", 0),
		incident("Cairo, Egypt", "", 0),
		incident("Paris, France", "", 0),
	})
	if len(zones) != 2 || zones[0].Name != "Paris, France" || zones[1].Name != "Cairo, Egypt" {
		t.Fatalf("unexpected order: %+v", zones)
	}
}

func TestRiskIntensity(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 0},
		{3, 0.2},
		{15, 1},
		{30, 1},
	}
	for _, tc := range tests {
		if got := RiskIntensity(tc.count, DefaultIntensityDenominator); got != tc.want {
			t.Errorf("RiskIntensity(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
	// The denominator is a calibration knob; non-positive falls back to 15.
	if got := RiskIntensity(10, 20); got != 0.5 {
		t.Errorf("custom denominator: got %v", got)
	}
	if got := RiskIntensity(3, 0); got != 0.2 {
		t.Errorf("zero denominator: got %v", got)
	}
}

func TestAggregate_ThirtyIncidentsSaturate(t *testing.T) {
	var recs []IncidentRecord
	for i := 0; i < 30; i++ {
		recs = append(recs, incident("Manila, Philippines", "typhoon, heavy rain", 1))
	}
	zones, _ := NewAggregator().Aggregate(recs)
	if zones[0].RiskIntensity != 1 {
		t.Errorf("expected intensity 1, got %v", zones[0].RiskIntensity)
	}
	if zones[0].PrimaryCause != CauseSevereWeather {
		t.Errorf("expected Severe Weather, got %q", zones[0].PrimaryCause)
	}
}

func TestWriteJSON_FieldNames(t *testing.T) {
	zones, _ := NewAggregator().Aggregate([]IncidentRecord{incident("Rome, Italy", "fog", 2)})
	path := filepath.Join(t.TempDir(), "nested", "risk_zones.json")

	if err := WriteJSON(path, zones); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"name", "latitude", "longitude", "incidentCount", "totalFatalities",
		"incidentSamples", "causeCounts", "primaryCause", "riskIntensity", "description"} {
		if _, ok := raw[0][k]; !ok {
			t.Errorf("missing field %q", k)
		}
	}

	back, err := ReadZones(path)
	if err != nil || len(back) != 1 || back[0].CauseCounts[CauseFog] != 1 {
		t.Errorf("ReadZones: %v %+v", err, back)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "crashes.csv")
	content := datasetHeader + "\n" +
		`03/05/1975,,"Rio de Janeiro, Brazil",Varig,,,B-707,,,90,80,0,"engine fire over ocean"` + "\n" +
		`07/08/1995,,"Rio de Janeiro, Brazil",TAM,,,F-100,,,40,30,0,"stall on approach"` + "\n" +
		`01/01/1960,,"Nowhere",X,,,Y,,,1,1,0,""` + "\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Config{
		CSVPath:       csvPath,
		OutPath:       filepath.Join(dir, "out", "risk_zones.json"),
		AnalyticsPath: filepath.Join(dir, "out", "analytics.json"),
		TopN:          5,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Zones) != 1 || res.Aggregate.Unmatched != 1 {
		t.Fatalf("unexpected result: %+v", res.Aggregate)
	}
	if res.Analytics == nil || res.Analytics.GlobalStats.TotalFatalities != 110 {
		t.Errorf("analytics: %+v", res.Analytics)
	}
	if len(res.Top) != 2 || res.Top[0].Location != "Rio de Janeiro, Brazil" || res.Top[0].Count != 2 {
		t.Errorf("top locations: %+v", res.Top)
	}
}

func TestRun_MissingDatasetWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "risk_zones.json")

	if _, err := Run(Config{CSVPath: filepath.Join(dir, "nope.csv"), OutPath: out}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file, stat err=%v", err)
	}
}
