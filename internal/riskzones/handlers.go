package riskzones

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	Catalog *Catalog
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GetZones returns all zones. ?minIntensity=0.5 and ?cause=Fog filter the list.
func (h *Handler) GetZones(w http.ResponseWriter, r *http.Request) {
	zones := h.Catalog.Zones()

	minIntensity := 0.0
	if v := r.URL.Query().Get("minIntensity"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			http.Error(w, "minIntensity must be a number between 0 and 1", http.StatusBadRequest)
			return
		}
		minIntensity = f
	}
	cause := Cause(r.URL.Query().Get("cause"))

	out := make([]RiskZone, 0, len(zones))
	for _, z := range zones {
		if z.RiskIntensity < minIntensity {
			continue
		}
		if cause != "" && z.PrimaryCause != cause {
			continue
		}
		out = append(out, z)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetZone returns one zone by its gazetteer name.
func (h *Handler) GetZone(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "Invalid zone name", http.StatusBadRequest)
		return
	}
	z, ok := h.Catalog.Zone(name)
	if !ok {
		http.Error(w, "Zone not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	a, ok := h.Catalog.Analytics()
	if !ok {
		http.Error(w, "Analytics not loaded", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Reload re-reads the artifacts from disk after a new riskgen run.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.Catalog.Reload(); err != nil {
		log.Printf("[risk] reload error: %v", err)
		http.Error(w, "Reload failed; previous zones still served", http.StatusInternalServerError)
		return
	}
	zones := h.Catalog.Zones()
	log.Printf("[risk] reloaded %d zones in %dms", len(zones), time.Since(start).Milliseconds())
	writeJSON(w, http.StatusOK, map[string]any{
		"zones":    len(zones),
		"loadedAt": h.Catalog.LoadedAt(),
	})
}
