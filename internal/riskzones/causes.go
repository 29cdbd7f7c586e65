package riskzones

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cause is a coarse crash-cause label derived from summary keywords.
type Cause string

const (
	CauseFog                Cause = "Fog"
	CauseMountainousTerrain Cause = "Mountainous Terrain"
	CauseEngineFailure      Cause = "Engine Failure"
	CauseSevereWeather      Cause = "Severe Weather"
	CauseStall              Cause = "Stall"
	CauseConflict           Cause = "Conflict"
	CauseFire               Cause = "Fire"

	// CauseUnknown is the primary cause of a zone where no rule ever matched.
	CauseUnknown Cause = "Unknown"
)

// CauseRule attributes Cause to a summary containing any of Keywords (lower case).
type CauseRule struct {
	Cause    Cause
	Keywords []string
}

// CauseRules is an ordered rule list. Order also breaks ties when picking a primary cause.
type CauseRules []CauseRule

// DefaultCauseRules returns the fixed keyword rules in evaluation order.
func DefaultCauseRules() CauseRules {
	return CauseRules{
		{CauseFog, []string{"fog"}},
		{CauseMountainousTerrain, []string{"mountain"}},
		{CauseEngineFailure, []string{"engine"}},
		{CauseSevereWeather, []string{"storm", "rain", "snow"}},
		{CauseStall, []string{"stall"}},
		{CauseConflict, []string{"shot down"}},
		{CauseFire, []string{"fire"}},
	}
}

// Classify returns every cause whose rule matches summary, in rule order.
// Rules are not exclusive.
func (rules CauseRules) Classify(summary string) []Cause {
	if strings.TrimSpace(summary) == "" {
		return nil
	}
	text := cases.Lower(language.Und).String(summary)

	var out []Cause
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				out = append(out, rule.Cause)
				break
			}
		}
	}
	return out
}
