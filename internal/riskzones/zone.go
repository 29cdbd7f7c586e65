package riskzones

import (
	"fmt"
	"math"
)

// DefaultIntensityDenominator is the incident count at which a zone reaches full intensity.
// Existing consumers of risk_zones.json are calibrated against 15.
const DefaultIntensityDenominator = 15

// IncidentSample is the per-incident detail kept on a zone.
type IncidentSample struct {
	Date       string `json:"date"`
	Operator   string `json:"operator"`
	Fatalities int    `json:"fatalities"`
	Summary    string `json:"summary"`
}

// RiskZone aggregates the incidents attributed to one gazetteer entry.
type RiskZone struct {
	Name            string           `json:"name"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
	IncidentCount   int              `json:"incidentCount"`
	TotalFatalities int              `json:"totalFatalities"`
	IncidentSamples []IncidentSample `json:"incidentSamples"`
	CauseCounts     map[Cause]int    `json:"causeCounts"`

	// Set by Finalize.
	PrimaryCause  Cause   `json:"primaryCause"`
	RiskIntensity float64 `json:"riskIntensity"`
	Description   string  `json:"description"`
}

func newRiskZone(e GazetteerEntry) *RiskZone {
	return &RiskZone{
		Name:            e.Name,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		IncidentSamples: []IncidentSample{},
		CauseCounts:     map[Cause]int{},
	}
}

func (z *RiskZone) add(rec IncidentRecord, causes []Cause) {
	z.IncidentCount++
	z.TotalFatalities += rec.Fatalities.Value
	z.IncidentSamples = append(z.IncidentSamples, IncidentSample{
		Date:       rec.Date,
		Operator:   rec.Operator,
		Fatalities: rec.Fatalities.Value,
		Summary:    rec.Summary,
	})
	for _, c := range causes {
		z.CauseCounts[c]++
	}
}

// PrimaryCause walks rules in order and keeps the first cause to reach the highest count.
func PrimaryCause(counts map[Cause]int, rules CauseRules) Cause {
	top, max := CauseUnknown, 0
	for _, rule := range rules {
		if n := counts[rule.Cause]; n > max {
			top, max = rule.Cause, n
		}
	}
	return top
}

// RiskIntensity is count/denominator capped at 1. A non-positive denominator uses the default.
func RiskIntensity(count int, denominator float64) float64 {
	if denominator <= 0 {
		denominator = DefaultIntensityDenominator
	}
	return math.Min(float64(count)/denominator, 1)
}

func describe(count int, cause Cause) string {
	return fmt.Sprintf("High risk zone with %d recorded incidents. Primary factor: %s.", count, cause)
}

// Finalize computes the derived fields. It is called once per zone, after aggregation.
func (z *RiskZone) Finalize(rules CauseRules, denominator float64) {
	z.PrimaryCause = PrimaryCause(z.CauseCounts, rules)
	z.RiskIntensity = RiskIntensity(z.IncidentCount, denominator)
	z.Description = describe(z.IncidentCount, z.PrimaryCause)
}
