// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dashboard API.

DashboardHandler is created with the source registry and metrics and owns
the dashboard.Service that runs the queries:

	dashboardHandler := handlers.NewDashboardHandler(registry, m)

# Endpoints

	GET /api/health                  → Health
	GET /api/dashboard/stats         → Stats
	GET /api/dashboard/caste         → Caste
	GET /api/dashboard/mother-tongue → MotherTongue
	GET /api/dashboard/gender-areas  → GenderAreas
	GET /api/dashboard/voters        → Voters

Every dashboard endpoint parses its query string with filters.Normalize, so
the same parameters mean the same thing everywhere. A validation error or a
query failure on any source answers 400 with {"message": "..."}; query
failures are logged with the request id, source and operation.
*/
package handlers
