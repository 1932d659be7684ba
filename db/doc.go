// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the read-only data sources the dashboard queries.

# Source Registry

Specs resolves the known sources (scanner, reviewed) from configuration, in
declaration order. Open then opens each one that exists:

	specs, err := db.Specs(cfg)
	registry, err := db.Open(ctx, specs)
	if errors.Is(err, db.ErrNoSources) {
		os.Exit(1)
	}
	defer registry.Close()

A sqlite file that does not exist is skipped, and so is a postgres
override that cannot be reached (with a warning). Zero opened sources is
ErrNoSources: there is no "serve with no data" state.

Select picks the active sources for one request:

	registry.Select("all")      // every source
	registry.Select("reviewed") // zero or one source

# Drivers

  - sqlite (modernc.org/sqlite): opened with mode=ro and query_only; the
    package replaces lower() with a Unicode fold
  - postgres (github.com/lib/pq): used when an override is a postgres:// URL

# Parameters

Queries are written with @name placeholders. Source.Query and
Source.QueryRow pass them through Dialect.Bind, which uses sql.Named for
sqlite and rewrites to $1, $2, ... for postgres.

# Schema Convention

Every source follows the same layout; CreateSchema builds it for fixtures:

	FamiliesDraft 1──* PersonsDraft 1──* PhonesDraft

Only PersonsDraft rows with IsActive = 1 are ever visible.
*/
package db
