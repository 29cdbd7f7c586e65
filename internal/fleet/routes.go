package fleet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the fleet endpoints. admin guards the write endpoints.
func SetupRoutes(h *Handler, admin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/aircraft", h.GetAircraft)
	r.Get("/aircraft/{hex}", h.GetAircraftByHex)
	r.Get("/aircraft/{hex}/trace", h.GetTrace)
	r.Get("/signal-lost", h.GetSignalLost)
	r.Get("/at-risk", h.GetAtRisk)
	r.Get("/status", h.GetStatus)

	r.With(admin).Post("/refresh", h.Refresh)

	return r
}
