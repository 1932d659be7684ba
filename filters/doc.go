// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filters validates dashboard query parameters and compiles them to SQL.

# Normalization

Normalize is the single entry point for request parameters:

	f, err := filters.Normalize(r.URL.Query())
	var verr *filters.ValidationError
	if errors.As(err, &verr) {
		// 400
	}

String fields are trimmed and lowercased; "" and "all" mean no constraint.
Enum fields (gender, ageGroup, hasRationCard, hasComplaint, source) must be
in their closed vocabulary. limit defaults to 200 and must be in [1, 1000];
offset defaults to 0 and must be >= 0.

# Predicates

Compile turns a filter into a conjunction that always starts with the
active-person check:

	pred := filters.Compile(f)
	pred.Where()  // "WHERE p.IsActive = 1 AND LOWER(TRIM(COALESCE(p.Gender, ''))) = @gender"
	pred.Params   // map[gender:female]

Conditions reference the p (PersonsDraft) and f (FamiliesDraft) aliases.
Equality filters compare against Normalized(column), the same expression
breakdowns group by.
Search binds one LIKE pattern reused across every column; %, _ and \ in the
search term are escaped so they match literally.

booth, voterType, pollingStation and society are accepted and normalized but
have no column in the source schema, so they add no condition.
*/
package filters
