package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

var hexRe = regexp.MustCompile(`^~?[0-9a-f]{6}$`)

const traceTimeout = 10 * time.Second

// TraceFetcher looks up the flown track of one aircraft.
type TraceFetcher interface {
	FetchTrace(ctx context.Context, hex string) ([]TracePoint, error)
}

// Handler serves the poller's current state.
type Handler struct {
	Poller *Poller
	Traces TraceFetcher
	Zones  ZoneSource
}

type aircraftResponse struct {
	Count      int             `json:"count"`
	LastUpdate *time.Time      `json:"lastUpdate"`
	Status     Status          `json:"status"`
	Message    string          `json:"message,omitempty"`
	Aircraft   []AircraftState `json:"aircraft"`
}

type statusResponse struct {
	Status     Status          `json:"status"`
	Message    string          `json:"message,omitempty"`
	LastUpdate *time.Time      `json:"lastUpdate"`
	Count      int             `json:"count"`
	LastReport GatherReport    `json:"lastReport"`
	Metrics    MetricsSnapshot `json:"metrics"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func lastUpdatePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (h *Handler) dataStatus(w http.ResponseWriter, s Snapshot) {
	w.Header().Set("X-Data-Status", string(s.Status))
}

// GetAircraft returns the current aircraft set.
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	s := h.Poller.Snapshot()
	h.dataStatus(w, s)
	writeJSON(w, http.StatusOK, aircraftResponse{
		Count:      len(s.Aircraft),
		LastUpdate: lastUpdatePtr(s.LastUpdate),
		Status:     s.Status,
		Message:    s.Message,
		Aircraft:   s.Aircraft,
	})
}

func hexParam(r *http.Request) (string, bool) {
	hex := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "hex")))
	return hex, hexRe.MatchString(hex)
}

// GetAircraftByHex returns one aircraft of the current set.
func (h *Handler) GetAircraftByHex(w http.ResponseWriter, r *http.Request) {
	hex, ok := hexParam(r)
	if !ok {
		http.Error(w, "Invalid aircraft identifier", http.StatusBadRequest)
		return
	}
	a, found := h.Poller.Lookup(hex)
	if !found {
		http.Error(w, "Aircraft not in current set", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetTrace proxies the flown track of one aircraft.
func (h *Handler) GetTrace(w http.ResponseWriter, r *http.Request) {
	if h.Traces == nil {
		http.Error(w, "Trace lookup disabled", http.StatusServiceUnavailable)
		return
	}
	hex, ok := hexParam(r)
	if !ok {
		http.Error(w, "Invalid aircraft identifier", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), traceTimeout)
	defer cancel()

	points, err := h.Traces.FetchTrace(ctx, hex)
	if err != nil {
		LogError("trace", err)
		http.Error(w, "Trace unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"identifier": hex,
		"path":       points,
	})
}

// GetSignalLost returns aircraft whose last report is older than SignalLostAfter.
func (h *Handler) GetSignalLost(w http.ResponseWriter, r *http.Request) {
	lost := h.Poller.SignalLost()
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(lost),
		"aircraft": lost,
	})
}

// GetStatus reports the last poll outcome and counters.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	s := h.Poller.Snapshot()
	h.dataStatus(w, s)
	writeJSON(w, http.StatusOK, statusResponse{
		Status:     s.Status,
		Message:    s.Message,
		LastUpdate: lastUpdatePtr(s.LastUpdate),
		Count:      len(s.Aircraft),
		LastReport: s.LastReport,
		Metrics:    h.Poller.Metrics().Snapshot(),
	})
}

// GetAtRisk lists aircraft currently inside a risk zone area.
func (h *Handler) GetAtRisk(w http.ResponseWriter, r *http.Request) {
	var zones []ZoneArea
	if h.Zones != nil {
		zones = h.Zones()
	}
	contacts := AtRisk(h.Poller.Snapshot().Aircraft, zones)
	writeJSON(w, http.StatusOK, map[string]any{
		"zones":    len(zones),
		"count":    len(contacts),
		"contacts": contacts,
	})
}

// Refresh runs a poll now and reports its outcome. It answers 409 if one is already running.
// A client disconnect does not abort the poll.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.Poller.Tick(context.WithoutCancel(r.Context()))
	if errors.Is(err, ErrTickInProgress) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	h.GetStatus(w, r)
}
