package riskzones

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, admin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/zones", h.GetZones)
	r.Get("/zones/{name}", h.GetZone)
	r.Get("/analytics", h.GetAnalytics)

	r.With(admin).Post("/reload", h.Reload)

	return r
}
