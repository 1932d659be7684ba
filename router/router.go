// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/handlers"
	"github.com/danielhkuo/canvass/metrics"
	"github.com/danielhkuo/canvass/middleware"
)

func NewRouter(sources *db.Registry, cfg cliparse.Config, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(sources, m)

	handle := func(path string, h http.HandlerFunc) {
		mux.HandleFunc("GET "+path, middleware.WithMetrics(m, path, middleware.WithLogging(h)))
	}

	// Health check
	handle("/api/health", dashboardHandler.Health)

	// Dashboard aggregates
	handle("/api/dashboard/stats", dashboardHandler.Stats)
	handle("/api/dashboard/caste", dashboardHandler.Caste)
	handle("/api/dashboard/mother-tongue", dashboardHandler.MotherTongue)
	handle("/api/dashboard/gender-areas", dashboardHandler.GenderAreas)
	handle("/api/dashboard/voters", dashboardHandler.Voters)

	// Prometheus scrape endpoint
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	return middleware.RequestID(middleware.CORS(cfg.AllowedOrigins)(mux))
}
