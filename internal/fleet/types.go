package fleet

import (
	"bytes"
	"encoding/json"
)

// Num is an optional JSON number. Anything that is not a number (null, "ground", a
// mistyped string) decodes as absent instead of failing the whole response.
type Num struct {
	Value float64
	Valid bool
}

func NumOf(v float64) Num { return Num{Value: v, Valid: true} }

func (n *Num) UnmarshalJSON(data []byte) error {
	*n = Num{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	*n = Num{Value: f, Valid: true}
	return nil
}

func (n Num) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil when absent, otherwise a pointer to Value scaled by factor.
func (n Num) Ptr(factor float64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value * factor
	return &v
}

// RawAircraft is one entry of the feed's "ac" array. Units are the feed's: feet, knots,
// feet/min, seconds.
type RawAircraft struct {
	Hex      string  `json:"hex"`
	Flight   *string `json:"flight,omitempty"`
	Lat      Num     `json:"lat"`
	Lon      Num     `json:"lon"`
	AltBaro  Num     `json:"alt_baro"` // may be "ground"
	GS       Num     `json:"gs"`
	Track    Num     `json:"track"`
	BaroRate Num     `json:"baro_rate"`
	AltGeom  Num     `json:"alt_geom"`
	Squawk   *string `json:"squawk,omitempty"`
	Seen     Num     `json:"seen"`
}

type feedResponse struct {
	AC []RawAircraft `json:"ac"`
}

// AircraftState is the canonical per-aircraft record served to the dashboard.
// SI units; nil fields were not reported.
type AircraftState struct {
	Identifier     string   `json:"identifier"`
	Callsign       *string  `json:"callsign"`
	OriginCountry  string   `json:"originCountry"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	BaroAltitude   *float64 `json:"baroAltitude"` // m
	GroundSpeed    *float64 `json:"groundSpeed"`  // m/s
	TrueTrack      *float64 `json:"trueTrack"`    // degrees
	VerticalRate   *float64 `json:"verticalRate"` // feed units, passed through
	GeoAltitude    *float64 `json:"geoAltitude"`  // m
	Squawk         *string  `json:"squawk"`
	SignalLost     bool     `json:"signalLost"`
	LastContactAge float64  `json:"lastContactAge"` // s
}

// TracePoint is one position of a flown track.
type TracePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
