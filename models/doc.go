// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the filter record and the JSON shapes of the dashboard API.

# Filter Record

Filter is produced once per request by filters.Normalize and passed unchanged
to every query:

	f, err := filters.Normalize(r.URL.Query())

An empty string field means "no constraint". Limit and Offset are always set
(defaults 200 and 0) and Source is always a source key or "all".

# Response Types

  - HealthResponse: GET /api/health
  - StatsResponse: GET /api/dashboard/stats
  - CategorySlice: GET /api/dashboard/caste, GET /api/dashboard/mother-tongue
  - GenderAreaSlice: GET /api/dashboard/gender-areas
  - VoterResponse / VoterRecord: GET /api/dashboard/voters
  - ErrorResponse: every 400 response ({"message": "..."})

VoterRecord display fields always carry a value; optional fields (caste,
phoneNo, ...) are omitted when empty.
*/
package models
