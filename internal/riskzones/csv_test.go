package riskzones

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const datasetHeader = "Date,Time,Location,Operator,Flight #,Route,Type,Registration,cn/In,Aboard,Fatalities,Ground,Summary"

func TestParseLine_QuotedCommas(t *testing.T) {
	line := `09/17/1908,17:18,"Fort Myer, Virginia",Military - U.S. Army,,Demonstration,Wright Flyer III,,1,2,1,0,"During a demonstration flight, a U.S. Army flyer flown by Orville Wright nose-dived into the ground"`

	rec, ok := ParseLine(line)
	if !ok {
		t.Fatal("expected record")
	}
	if rec.Date != "09/17/1908" {
		t.Errorf("date: got %q", rec.Date)
	}
	if rec.Location != "Fort Myer, Virginia" {
		t.Errorf("location: got %q", rec.Location)
	}
	if rec.Operator != "Military - U.S. Army" {
		t.Errorf("operator: got %q", rec.Operator)
	}
	if rec.AircraftType != "Wright Flyer III" {
		t.Errorf("type: got %q", rec.AircraftType)
	}
	if rec.Fatalities.Value != 1 || rec.Fatalities.Defaulted {
		t.Errorf("fatalities: got %+v", rec.Fatalities)
	}
	if !strings.HasPrefix(rec.Summary, "During a demonstration flight, a U.S. Army") {
		t.Errorf("summary split on quoted comma: %q", rec.Summary)
	}
}

func TestParseLine_TrimsFieldsAndKeepsTrailingField(t *testing.T) {
	rec, ok := ParseLine(`  01/01/1950 , 10:00 ,  Paris, France  ,Air France`)
	if !ok {
		t.Fatal("expected record")
	}
	// Unquoted commas split "Paris, France" into two columns.
	if rec.Location != "Paris" {
		t.Errorf("location: got %q", rec.Location)
	}
	if rec.Operator != "France" {
		t.Errorf("operator: got %q", rec.Operator)
	}
	if rec.Summary != "" || rec.Fatalities.Value != 0 {
		t.Errorf("missing trailing columns should be empty, got %+v", rec)
	}

	rec, ok = ParseLine(`a,b,c,d,e,f,g,h,i,j,3,k,final field`)
	if !ok || rec.Summary != "final field" {
		t.Errorf("trailing unquoted field: got %q ok=%v", rec.Summary, ok)
	}
}

func TestParseLine_Skips(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "only,two", "single"} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("expected %q to be skipped", line)
		}
	}
}

func TestParseLine_FatalitiesDefault(t *testing.T) {
	tests := []struct {
		raw       string
		want      int
		defaulted bool
	}{
		{"12", 12, false},
		{" 7 ", 7, false},
		{"12 (+3)", 12, false},
		{"", 0, true},
		{"?", 0, true},
		{"unknown", 0, true},
		{"-4", 0, true},
	}
	for _, tc := range tests {
		line := "d,t,loc,op,fn,route,type,reg,cn,10," + tc.raw + ",0,summary"
		rec, ok := ParseLine(line)
		if !ok {
			t.Fatalf("%q: expected record", tc.raw)
		}
		if rec.Fatalities.Value != tc.want || rec.Fatalities.Defaulted != tc.defaulted {
			t.Errorf("%q: got %+v, want value=%d defaulted=%v", tc.raw, rec.Fatalities, tc.want, tc.defaulted)
		}
	}
}

func TestReadRecords_SkipsHeaderAndMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		datasetHeader,
		`01/01/1970,,"Moscow, Russia",Aeroflot,,,Il-18,,,50,?,0,Crashed in fog`,
		``,
		`bad,row`,
		`02/02/1980,,"Cairo, Egypt",EgyptAir,,,B-707,,,80,40,0,Engine fire`,
	}, "\r\n")

	recs, stats, err := ReadRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if stats.Lines != 4 || stats.Skipped != 2 || stats.Records != 2 || stats.FatalitiesDefaulted != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if recs[1].Summary != "Engine fire" {
		t.Errorf("carriage return not stripped: %q", recs[1].Summary)
	}
}

func TestReadFile_MissingDatasetIsFatal(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
}
