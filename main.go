package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SkyWatchOps/SW-Backend/internal/fleet"
	"github.com/SkyWatchOps/SW-Backend/internal/middleware"
	"github.com/SkyWatchOps/SW-Backend/internal/riskzones"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// zoneAreas adapts the loaded risk zones to the fleet's hazard areas.
func zoneAreas(c *riskzones.Catalog) fleet.ZoneSource {
	return func() []fleet.ZoneArea {
		zones := c.Zones()
		out := make([]fleet.ZoneArea, 0, len(zones))
		for _, z := range zones {
			out = append(out, fleet.ZoneArea{
				Name:     z.Name,
				Lat:      z.Latitude,
				Lon:      z.Longitude,
				RadiusKM: riskzones.DisplayRadiusKM(z),
			})
		}
		return out
	}
}

func main() {
	_ = godotenv.Load(".env.local")

	port := envOr("PORT", "5050")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, poller, err := fleet.Init(fleet.LoadFromEnv())
	if err != nil {
		log.Fatal(err)
	}

	catalog := riskzones.NewCatalog(
		envOr("RISK_ZONES_PATH", "data/risk_zones.json"),
		os.Getenv("RISK_ANALYTICS_PATH"),
	)
	if err := catalog.Reload(); err != nil {
		log.Printf("[risk] WARNING: no risk zones loaded: %v", err)
		log.Printf("[risk] run cmd/riskgen, then POST /risk/reload")
	} else {
		log.Printf("[risk] loaded %d zones", len(catalog.Zones()))
	}

	admin := middleware.AdminToken(os.Getenv("ADMIN_TOKEN_HASH"))

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(middleware.AllowedOriginsFromEnv()))
	r.Get("/", RootHandler)

	r.Mount("/fleet", fleet.SetupRoutes(&fleet.Handler{
		Poller: poller,
		Traces: client,
		Zones:  zoneAreas(catalog),
	}, admin))
	r.Mount("/risk", riskzones.SetupRoutes(&riskzones.Handler{Catalog: catalog}, admin))

	if err := poller.Start(ctx); err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port :%s...", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	poller.Stop()
}
