// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dashboard runs the aggregate queries behind the canvassing dashboard.

A Service folds each operation over the sources selected by the filter, in
declaration order, compiling the filter once per request so every query
shares the same WHERE clause:

	svc := dashboard.NewService(registry, m)
	stats, err := svc.Stats(ctx, f)
	castes, err := svc.Breakdown(ctx, f, dashboard.CasteDimension)
	areas, err := svc.GenderAreas(ctx, f)
	page, err := svc.Voters(ctx, f)

# Merging

  - Stats: every counter is summed across sources. Duplicates are counted
    per source, as all rows of an EPIC id seen more than once.
  - Breakdown: counts merge by normalized label in first-seen order; colors
    come from Palette by position.
  - GenderAreas: male/female counts merge by area and sort by area name.
  - Voters: sources are concatenated, newest person first within each, and
    the [offset, offset+limit) window is cut from the concatenation.

A failure on any source aborts the operation with a *QueryError naming the
source and operation. Partial results are never returned.
*/
package dashboard
