// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/canvass/models"
)

// ValidationError reports a query parameter that failed its shape check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	genders   = []string{models.GenderMale, models.GenderFemale, models.GenderOther}
	ageGroups = []string{models.Age18To25, models.Age26To35, models.Age36To45, models.Age46To55, models.Age56To65, models.Age65Plus}
	yesNo     = []string{models.Yes, models.No}
	sources   = []string{models.SourceScanner, models.SourceReviewed}
)

// Normalize turns raw query parameters into the canonical filter record.
// It is the only place request parameters are parsed; every dashboard
// endpoint goes through it.
func Normalize(query url.Values) (models.Filter, error) {
	f := models.Filter{
		Search:         text(lookup(query, "search")),
		Ward:           text(lookup(query, "ward")),
		Booth:          text(lookup(query, "booth")),
		Caste:          text(lookup(query, "caste")),
		MotherTongue:   text(lookup(query, "motherTongue")),
		VoterType:      text(lookup(query, "voterType")),
		PollingStation: text(lookup(query, "pollingStation")),
		Society:        text(lookup(query, "society")),
	}

	var err error
	if f.Gender, err = oneOf("gender", lookup(query, "gender"), genders); err != nil {
		return models.Filter{}, err
	}
	if f.AgeGroup, err = oneOf("ageGroup", lookup(query, "ageGroup"), ageGroups); err != nil {
		return models.Filter{}, err
	}
	if f.HasRationCard, err = oneOf("hasRationCard", lookup(query, "hasRationCard"), yesNo); err != nil {
		return models.Filter{}, err
	}
	if f.HasComplaint, err = oneOf("hasComplaint", lookup(query, "hasComplaint"), yesNo); err != nil {
		return models.Filter{}, err
	}
	if f.Source, err = oneOf("source", lookup(query, "source"), sources); err != nil {
		return models.Filter{}, err
	}
	if f.Source == "" {
		f.Source = models.SourceAll
	}

	if f.Limit, err = integer("limit", lookup(query, "limit"), models.DefaultLimit); err != nil {
		return models.Filter{}, err
	}
	if f.Limit < models.MinLimit || f.Limit > models.MaxLimit {
		return models.Filter{}, &ValidationError{
			Field:  "limit",
			Reason: fmt.Sprintf("must be between %d and %d", models.MinLimit, models.MaxLimit),
		}
	}

	if f.Offset, err = integer("offset", lookup(query, "offset"), 0); err != nil {
		return models.Filter{}, err
	}
	if f.Offset < 0 {
		return models.Filter{}, &ValidationError{Field: "offset", Reason: "must be >= 0"}
	}

	return f, nil
}

// lookup matches the parameter name exactly first, then case-insensitively.
func lookup(query url.Values, name string) string {
	if vals, ok := query[name]; ok && len(vals) > 0 {
		return vals[0]
	}
	for key, vals := range query {
		if strings.EqualFold(key, name) && len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}

// text trims and lowercases; "" and "all" mean no constraint.
func text(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == models.SourceAll {
		return ""
	}
	return v
}

func oneOf(field, raw string, allowed []string) (string, error) {
	v := text(raw)
	if v == "" {
		return "", nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be one of %s, all", strings.Join(allowed, ", ")),
	}
}

func integer(field, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}
