// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request IDs

RequestID wraps the whole mux. It keeps a caller's X-Request-ID or generates
a UUID, stores it in the request context and echoes it in the response:

	id := middleware.GetRequestID(r.Context())

# Request Logging and Metrics

Wrap route handlers with logging and per-route request counting:

	mux.HandleFunc("GET /api/health",
		middleware.WithMetrics(m, "/api/health", middleware.WithLogging(handler)))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms).

# CORS Middleware

CORS takes the configured allow-list. Any http://localhost:<port> origin is
always allowed:

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Requests without an Origin header pass through. Disallowed origins get no
CORS headers, and their preflights are refused with 403.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "invalid limit: must be between 1 and 1000")

Error bodies are always {"message": "..."}.
*/
package middleware
