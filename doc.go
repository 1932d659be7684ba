// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the canvassing dashboard API.

The server answers read-only aggregate queries (headline stats, caste and
mother-tongue breakdowns, gender by area, paginated voter listings) over
one or more canvassing data sources that share the same person/family/phone
schema.

# Starting the Server

With the default layout, scanner.db and reviewed.db sit in the parent of the
base directory:

	go run . -base ./server

Or point at each source explicitly; a postgres URL works too:

	SCANNER_DB=/data/scanner.db REVIEWED_DB=postgres://... go run .

Settings may also come from a .env file (-env, default ".env").

# Configuration

  - PORT (-p): Server port (default: 4000)
  - SCANNER_DB (-scanner), REVIEWED_DB (-reviewed): source overrides
  - DB_BASE_PATH (-base): base directory for default source paths
  - CLIENT_ORIGIN (-origins): comma-separated CORS allow-list
  - LOG_LEVEL (-log-level), LOG_FORMAT (-log-format): slog settings

The process exits with status 1 when no source can be opened.

# Architecture

  - cliparse: Configuration parsing
  - db: Source registry, dialect binding, fixture schema
  - filters: Query parameter normalization and predicate compilation
  - dashboard: Per-source queries and merging
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request IDs, CORS, logging, metrics, JSON helpers
  - metrics: Prometheus collectors
  - models: Filter record and response types

See package documentation for each component.
*/
package main
