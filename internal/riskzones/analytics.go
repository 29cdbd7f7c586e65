package riskzones

import (
	"math"
	"sort"
	"strconv"
	"time"
)

const (
	severityFatalityScale  = 500.0
	severityIncidentScale  = 50.0
	severityFatalityWeight = 0.7
	severityIncidentWeight = 0.3

	// trendPivotYear splits "old" from "recent" incidents.
	trendPivotYear = 1990

	sampleDateLayout = "1/2/2006"
)

type Trend string

const (
	TrendIncreasing Trend = "Increasing"
	TrendDecreasing Trend = "Decreasing"
	TrendStable     Trend = "Stable"
)

// ZoneAnalytics is the per-zone view in advanced_analytics.json.
type ZoneAnalytics struct {
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	SeverityScore float64 `json:"severityScore"`
	Trend         Trend   `json:"trend"`
	PrimaryCause  Cause   `json:"primaryCause"`
	Fatalities    int     `json:"fatalities"`
}

type GlobalStats struct {
	TotalIncidents    int            `json:"totalIncidents"`
	TotalFatalities   int            `json:"totalFatalities"`
	MostDangerousZone string         `json:"mostDangerousZone"`
	YearTrend         map[string]int `json:"yearTrend"`
}

type Analytics struct {
	GlobalStats GlobalStats     `json:"globalStats"`
	Zones       []ZoneAnalytics `json:"zones"`
}

// SeverityScore weights fatalities over incident counts on a 0-10 scale, one decimal.
func SeverityScore(totalFatalities, incidentCount int) float64 {
	s := math.Min(float64(totalFatalities)/severityFatalityScale, 1)*10*severityFatalityWeight +
		math.Min(float64(incidentCount)/severityIncidentScale, 1)*10*severityIncidentWeight
	return math.Round(math.Min(s, 10)*10) / 10
}

func sampleYear(date string) (int, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.Parse(sampleDateLayout, date)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

// TrendOf compares incidents after the pivot year with those up to it.
// Fewer than two dated incidents is Stable.
func TrendOf(years []int) Trend {
	if len(years) < 2 {
		return TrendStable
	}
	var recent, old int
	for _, y := range years {
		if y > trendPivotYear {
			recent++
		} else {
			old++
		}
	}
	switch {
	case recent > old:
		return TrendIncreasing
	case recent < old:
		return TrendDecreasing
	}
	return TrendStable
}

// Analyze derives severity, trend and global totals from finalized zones.
func Analyze(zones []RiskZone) Analytics {
	out := Analytics{
		GlobalStats: GlobalStats{YearTrend: map[string]int{}},
		Zones:       make([]ZoneAnalytics, 0, len(zones)),
	}

	best := -1.0
	for _, z := range zones {
		var years []int
		for _, s := range z.IncidentSamples {
			y, ok := sampleYear(s.Date)
			if !ok {
				continue
			}
			years = append(years, y)
			out.GlobalStats.YearTrend[strconv.Itoa(y)]++
		}

		za := ZoneAnalytics{
			Name:          z.Name,
			Latitude:      z.Latitude,
			Longitude:     z.Longitude,
			SeverityScore: SeverityScore(z.TotalFatalities, z.IncidentCount),
			Trend:         TrendOf(years),
			PrimaryCause:  z.PrimaryCause,
			Fatalities:    z.TotalFatalities,
		}
		out.Zones = append(out.Zones, za)

		out.GlobalStats.TotalIncidents += z.IncidentCount
		out.GlobalStats.TotalFatalities += z.TotalFatalities
		if za.SeverityScore > best {
			best = za.SeverityScore
			out.GlobalStats.MostDangerousZone = za.Name
		}
	}
	return out
}

// LocationCount is one row of the raw location frequency report.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// TopLocations counts raw location strings and returns the n most frequent.
// Equal counts keep first-appearance order. n <= 0 returns all.
func TopLocations(records []IncidentRecord, n int) []LocationCount {
	idx := map[string]int{}
	var counts []LocationCount
	for _, rec := range records {
		if rec.Location == "" {
			continue
		}
		i, ok := idx[rec.Location]
		if !ok {
			i = len(counts)
			idx[rec.Location] = i
			counts = append(counts, LocationCount{Location: rec.Location})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
