package riskzones

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Aggregator attributes incidents to gazetteer zones and scores them.
// It holds only read-only configuration and can be reused across runs.
type Aggregator struct {
	Gazetteer            Gazetteer
	Rules                CauseRules
	IntensityDenominator float64
}

// NewAggregator returns an Aggregator with the default gazetteer, rules and denominator.
func NewAggregator() Aggregator {
	return Aggregator{
		Gazetteer:            DefaultGazetteer(),
		Rules:                DefaultCauseRules(),
		IntensityDenominator: DefaultIntensityDenominator,
	}
}

// AggregateStats counts what happened to the input records.
type AggregateStats struct {
	Matched   int
	Unmatched int
	Zones     int
}

// Aggregate processes records in input order and returns finalized zones in creation order.
// Records whose location matches no gazetteer entry are dropped.
func (a Aggregator) Aggregate(records []IncidentRecord) ([]RiskZone, AggregateStats) {
	var (
		stats AggregateStats
		order []string
		zones = map[string]*RiskZone{}
	)

	for _, rec := range records {
		entry, ok := a.Gazetteer.Match(rec.Location)
		if !ok {
			stats.Unmatched++
			continue
		}
		stats.Matched++

		z, ok := zones[entry.Name]
		if !ok {
			z = newRiskZone(entry)
			zones[entry.Name] = z
			order = append(order, entry.Name)
		}
		z.add(rec, a.Rules.Classify(rec.Summary))
	}

	out := make([]RiskZone, 0, len(order))
	for _, name := range order {
		z := zones[name]
		z.Finalize(a.Rules, a.IntensityDenominator)
		out = append(out, *z)
	}
	stats.Zones = len(out)
	return out, stats
}

// WriteJSON writes v as one indented JSON document, creating parent directories.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadZones loads a previously emitted risk zone file.
func ReadZones(path string) ([]RiskZone, error) {
	var zones []RiskZone
	if err := readJSON(path, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
