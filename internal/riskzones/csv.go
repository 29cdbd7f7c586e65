package riskzones

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrDatasetUnavailable is returned when the historical dataset cannot be opened or read.
var ErrDatasetUnavailable = errors.New("historical dataset unavailable")

// Column positions in the crash dataset:
// Date,Time,Location,Operator,Flight #,Route,Type,Registration,cn/In,Aboard,Fatalities,Ground,Summary
const (
	colDate       = 0
	colLocation   = 2
	colOperator   = 3
	colType       = 6
	colFatalities = 10
	colSummary    = 12

	minFields = 3
)

// FieldInt is a numeric column together with how it was obtained.
// Defaulted is set when Raw could not be read as an integer and Value fell back to 0.
type FieldInt struct {
	Value     int
	Raw       string
	Defaulted bool
}

// IncidentRecord is one row of the historical crash dataset.
type IncidentRecord struct {
	Date         string
	Location     string
	Operator     string
	AircraftType string
	Fatalities   FieldInt
	Summary      string
}

// ParseStats summarizes a read of the dataset.
type ParseStats struct {
	Lines               int
	Records             int
	Skipped             int
	FatalitiesDefaulted int
}

// splitLine splits on commas outside double quotes. Quote characters toggle quoting and are dropped.
func splitLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// parseFieldInt reads the leading integer of s. "12 (+3)" reads as 12; "", "?" and negatives default to 0.
func parseFieldInt(s string) FieldInt {
	raw := strings.TrimSpace(s)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return FieldInt{Raw: s, Defaulted: true}
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 0 {
		return FieldInt{Raw: s, Defaulted: true}
	}
	return FieldInt{Value: n, Raw: s}
}

// ParseLine converts one dataset line into an IncidentRecord.
// Blank lines and lines with fewer than three fields report false.
func ParseLine(line string) (IncidentRecord, bool) {
	if strings.TrimSpace(line) == "" {
		return IncidentRecord{}, false
	}
	fields := splitLine(strings.TrimRight(line, "\r"))
	if len(fields) < minFields {
		return IncidentRecord{}, false
	}

	get := func(i int) string {
		if i >= len(fields) {
			return ""
		}
		return fields[i]
	}

	return IncidentRecord{
		Date:         get(colDate),
		Location:     get(colLocation),
		Operator:     get(colOperator),
		AircraftType: get(colType),
		Fatalities:   parseFieldInt(get(colFatalities)),
		Summary:      get(colSummary),
	}, true
}

// ReadRecords parses every line after the header.
func ReadRecords(r io.Reader) ([]IncidentRecord, ParseStats, error) {
	var (
		out   []IncidentRecord
		stats ParseStats
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		stats.Lines++

		rec, ok := ParseLine(sc.Text())
		if !ok {
			stats.Skipped++
			continue
		}
		if rec.Fatalities.Defaulted {
			stats.FatalitiesDefaulted++
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	stats.Records = len(out)
	return out, stats, nil
}

// ReadFile opens the dataset at path and parses it.
func ReadFile(path string) ([]IncidentRecord, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	defer f.Close()

	return ReadRecords(bufio.NewReader(f))
}
