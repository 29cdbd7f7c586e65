package fleet

import "strings"

const (
	feetToMeters = 0.3048
	knotsToMPS   = 0.514444

	// OriginUnknown is reported until the feed carries a registration country.
	OriginUnknown = "Unknown"
)

// Dedup keeps the first record per hex, in input order. Records without a hex are dropped.
func Dedup(raw []RawAircraft) []RawAircraft {
	seen := make(map[string]struct{}, len(raw))
	out := make([]RawAircraft, 0, len(raw))
	for _, a := range raw {
		if a.Hex == "" {
			continue
		}
		if _, dup := seen[a.Hex]; dup {
			continue
		}
		seen[a.Hex] = struct{}{}
		out = append(out, a)
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Normalize converts one raw record. ok is false when the position is incomplete.
func Normalize(a RawAircraft) (AircraftState, bool) {
	if !a.Lat.Valid || !a.Lon.Valid {
		return AircraftState{}, false
	}

	age := 0.0
	if a.Seen.Valid {
		age = a.Seen.Value
	}

	return AircraftState{
		Identifier:     a.Hex,
		Callsign:       trimmed(a.Flight),
		OriginCountry:  OriginUnknown,
		Latitude:       a.Lat.Ptr(1),
		Longitude:      a.Lon.Ptr(1),
		BaroAltitude:   a.AltBaro.Ptr(feetToMeters),
		GroundSpeed:    a.GS.Ptr(knotsToMPS),
		TrueTrack:      a.Track.Ptr(1),
		VerticalRate:   a.BaroRate.Ptr(1),
		GeoAltitude:    a.AltGeom.Ptr(feetToMeters),
		Squawk:         trimmed(a.Squawk),
		SignalLost:     age > SignalLostAfter,
		LastContactAge: age,
	}, true
}

// NormalizeAll dedups raw records (first wins) and converts the survivors.
func NormalizeAll(raw []RawAircraft) []AircraftState {
	unique := Dedup(raw)
	out := make([]AircraftState, 0, len(unique))
	for _, a := range unique {
		if s, ok := Normalize(a); ok {
			out = append(out, s)
		}
	}
	return out
}
