// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/canvass/dashboard"
	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/filters"
	"github.com/danielhkuo/canvass/metrics"
	"github.com/danielhkuo/canvass/middleware"
	"github.com/danielhkuo/canvass/models"
)

type DashboardHandler struct {
	service *dashboard.Service
	sources *db.Registry
	metrics *metrics.Metrics
}

func NewDashboardHandler(sources *db.Registry, m *metrics.Metrics) *DashboardHandler {
	return &DashboardHandler{
		service: dashboard.NewService(sources, m),
		sources: sources,
		metrics: m,
	}
}

// Health handles GET /api/health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		OK:      true,
		Sources: h.sources.Len(),
		Keys:    h.sources.Keys(),
	})
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Caste handles GET /api/dashboard/caste
func (h *DashboardHandler) Caste(w http.ResponseWriter, r *http.Request) {
	h.breakdown(w, r, dashboard.CasteDimension)
}

// MotherTongue handles GET /api/dashboard/mother-tongue
func (h *DashboardHandler) MotherTongue(w http.ResponseWriter, r *http.Request) {
	h.breakdown(w, r, dashboard.MotherTongueDimension)
}

func (h *DashboardHandler) breakdown(w http.ResponseWriter, r *http.Request, d dashboard.Dimension) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}

	slices, err := h.service.Breakdown(r.Context(), f, d)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, slices)
}

// GenderAreas handles GET /api/dashboard/gender-areas
func (h *DashboardHandler) GenderAreas(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}

	areas, err := h.service.GenderAreas(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, areas)
}

// Voters handles GET /api/dashboard/voters
func (h *DashboardHandler) Voters(w http.ResponseWriter, r *http.Request) {
	f, ok := h.filter(w, r)
	if !ok {
		return
	}

	voters, err := h.service.Voters(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// filter normalizes the query string, answering 400 when it is invalid.
func (h *DashboardHandler) filter(w http.ResponseWriter, r *http.Request) (models.Filter, bool) {
	f, err := filters.Normalize(r.URL.Query())
	if err != nil {
		h.metrics.IncrementValidationFailures()
		slog.Warn("invalid filter",
			"path", r.URL.Path,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return models.Filter{}, false
	}
	return f, true
}

// fail reports a query failure. The API answers every failure with 400.
func (h *DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []any{
		"path", r.URL.Path,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	}
	var qerr *dashboard.QueryError
	if errors.As(err, &qerr) {
		attrs = append(attrs, "source", qerr.Source, "operation", qerr.Operation)
	}
	slog.Error("dashboard query failed", attrs...)

	middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
}
