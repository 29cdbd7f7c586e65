package riskzones

import (
	"fmt"
	"log"
	"time"
)

// Config drives one batch run of the aggregator.
type Config struct {
	CSVPath       string
	OutPath       string
	AnalyticsPath string // optional
	GazetteerPath string // optional; default table when empty
	Denominator   float64
	TopN          int // optional location report size

	Store *StoreConfig // optional database sink
}

// Result is what a run produced.
type Result struct {
	Zones     []RiskZone
	Analytics *Analytics
	Top       []LocationCount
	Parse     ParseStats
	Aggregate AggregateStats
}

// Run reads the dataset, aggregates and writes the artifacts. A missing dataset fails the run
// before anything is written.
func Run(cfg Config) (*Result, error) {
	if cfg.CSVPath == "" || cfg.OutPath == "" {
		return nil, fmt.Errorf("csv and out paths are required")
	}

	agg := NewAggregator()
	if cfg.GazetteerPath != "" {
		g, err := LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			return nil, err
		}
		agg.Gazetteer = g
	}
	if cfg.Denominator > 0 {
		agg.IntensityDenominator = cfg.Denominator
	}

	start := time.Now()
	records, ps, err := ReadFile(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[riskgen] read %d records (%d lines skipped, %d fatality counts defaulted) from %s",
		ps.Records, ps.Skipped, ps.FatalitiesDefaulted, cfg.CSVPath)

	zones, as := agg.Aggregate(records)
	log.Printf("[riskgen] aggregated %d -> %d zones (%d unmatched) in %dms",
		as.Matched, as.Zones, as.Unmatched, time.Since(start).Milliseconds())

	if err := WriteJSON(cfg.OutPath, zones); err != nil {
		return nil, err
	}
	log.Printf("[riskgen] risk zones written to %s", cfg.OutPath)

	res := &Result{Zones: zones, Parse: ps, Aggregate: as}

	if cfg.AnalyticsPath != "" {
		a := Analyze(zones)
		if err := WriteJSON(cfg.AnalyticsPath, a); err != nil {
			return nil, err
		}
		res.Analytics = &a
		log.Printf("[riskgen] analytics for %d zones written to %s", len(a.Zones), cfg.AnalyticsPath)
	}

	if cfg.TopN > 0 {
		res.Top = TopLocations(records, cfg.TopN)
	}

	if cfg.Store != nil {
		if err := SaveZones(*cfg.Store, zones, agg.Rules); err != nil {
			return nil, fmt.Errorf("storing zones: %w", err)
		}
	}

	return res, nil
}
