// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router configures HTTP routes for the canvassing dashboard API.

Routes use Go 1.22+ method patterns. Every API route is wrapped with request
counting and logging; the mux as a whole sits behind CORS and request IDs.

	GET /api/health                   {ok, sources, keys}
	GET /api/dashboard/stats          headline counters
	GET /api/dashboard/caste          [{name, value, color}]
	GET /api/dashboard/mother-tongue  [{name, value, color}]
	GET /api/dashboard/gender-areas   [{booth, male, female}]
	GET /api/dashboard/voters         {total, data}
	GET /metrics                      Prometheus exposition

All dashboard routes accept the same filter query parameters. Invalid
filters and query failures answer 400 with {"message": "..."}.
*/
package router
