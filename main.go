package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/RafiqApp/Rafiq-Backend/internal/alerts"
	"github.com/RafiqApp/Rafiq-Backend/internal/channel"
	"github.com/RafiqApp/Rafiq-Backend/internal/config"
	"github.com/RafiqApp/Rafiq-Backend/internal/db"
	"github.com/RafiqApp/Rafiq-Backend/internal/geofence"
	"github.com/RafiqApp/Rafiq-Backend/internal/groups"
	"github.com/RafiqApp/Rafiq-Backend/internal/logging"
	"github.com/RafiqApp/Rafiq-Backend/internal/middleware"
	"github.com/RafiqApp/Rafiq-Backend/internal/presence"
	"github.com/RafiqApp/Rafiq-Backend/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to database")

	groups.Init()
	geofence.Init()
	alerts.Init()
	presence.Init()

	identity := middleware.JWTFetcher{Secret: []byte(cfg.AuthJWTSecret)}
	hub := channel.NewHub(cfg.ChannelBuffer)
	coord := session.NewCoordinator(session.Deps{
		Presence: presence.Store{},
		Zones:    geofence.Registry{},
		Alerts:   alerts.Ledger{},
		Groups:   groups.Resolver{},
		Bus:      hub,
	}, cfg.SampleQueueSize)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/groups", groups.SetupRoutes(identity))
	r.Mount("/geofences", geofence.SetupRoutes(identity))
	r.Mount("/alerts", alerts.SetupRoutes(identity))
	r.Mount("/presence", presence.SetupRoutes(identity))
	r.Mount("/sessions", session.SetupRoutes(coord, identity, cfg.ReportRatePerSec, cfg.ReportBurst))
	r.Mount("/channel", channel.SetupRoutes(hub, identity))

	slog.Info("Server listening", "port", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
