// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package filters

import (
	"strings"

	"github.com/danielhkuo/canvass/models"
)

// ActiveCondition is present in every predicate.
const ActiveCondition = "p.IsActive = 1"

// Predicate is a conjunction of SQL conditions over the person (p) and
// family (f) aliases. Every user-supplied value is a @name placeholder
// bound through Params.
type Predicate struct {
	Conditions []string
	Params     map[string]any
}

// Where renders the predicate as a WHERE clause.
func (p Predicate) Where() string {
	return "WHERE " + strings.Join(p.Conditions, " AND ")
}

// With returns a copy with extra conditions appended. Params are shared.
func (p Predicate) With(conditions ...string) Predicate {
	merged := make([]string, 0, len(p.Conditions)+len(conditions))
	merged = append(merged, p.Conditions...)
	merged = append(merged, conditions...)
	return Predicate{Conditions: merged, Params: p.Params}
}

const searchCondition = `(
      LOWER(COALESCE(p.FullName, '')) LIKE @search ESCAPE '\'
      OR LOWER(COALESCE(p.EPICId, '')) LIKE @search ESCAPE '\'
      OR LOWER(COALESCE(f.CardNumber, '')) LIKE @search ESCAPE '\'
      OR LOWER(COALESCE(f.AddressLine1, '')) LIKE @search ESCAPE '\'
      OR LOWER(COALESCE(f.AddressLine2, '')) LIKE @search ESCAPE '\'
      OR LOWER(COALESCE(f.Area, '')) LIKE @search ESCAPE '\'
      OR EXISTS (
        SELECT 1 FROM PhonesDraft sp
        WHERE sp.LocalPersonId = p.LocalPersonId
          AND LOWER(COALESCE(sp.PhoneNumber, '')) LIKE @search ESCAPE '\'
      )
    )`

var ageConditions = map[string]string{
	models.Age18To25: "p.AgeYears BETWEEN 18 AND 25",
	models.Age26To35: "p.AgeYears BETWEEN 26 AND 35",
	models.Age36To45: "p.AgeYears BETWEEN 36 AND 45",
	models.Age46To55: "p.AgeYears BETWEEN 46 AND 55",
	models.Age56To65: "p.AgeYears BETWEEN 56 AND 65",
	models.Age65Plus: "p.AgeYears >= 65",
}

// Normalized is the comparison form of a text column: NULL as '', trimmed
// and lowercased. Equality filters and every grouping use it, so a label a
// chart shows always filters to the rows it counted.
func Normalized(column string) string {
	return "LOWER(TRIM(COALESCE(" + column + ", '')))"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Compile builds the predicate for a normalized filter. Every dashboard
// query uses it unchanged so filters mean the same thing everywhere.
func Compile(f models.Filter) Predicate {
	conditions := []string{ActiveCondition}
	params := map[string]any{}

	if f.Search != "" {
		conditions = append(conditions, searchCondition)
		params["search"] = "%" + likeEscaper.Replace(f.Search) + "%"
	}

	if f.Gender != "" {
		conditions = append(conditions, Normalized("p.Gender")+" = @gender")
		params["gender"] = f.Gender
	}

	if f.Caste != "" {
		conditions = append(conditions, Normalized("p.Caste")+" = @caste")
		params["caste"] = f.Caste
	}

	if f.MotherTongue != "" {
		conditions = append(conditions, Normalized("p.MotherTongue")+" = @motherTongue")
		params["motherTongue"] = f.MotherTongue
	}

	if f.Ward != "" {
		conditions = append(conditions, Normalized("f.Area")+" = @ward")
		params["ward"] = f.Ward
	}

	if cond := presence("f.CardNumber", f.HasRationCard); cond != "" {
		conditions = append(conditions, cond)
	}

	if cond := presence("f.Notes", f.HasComplaint); cond != "" {
		conditions = append(conditions, cond)
	}

	if cond, ok := ageConditions[f.AgeGroup]; ok {
		conditions = append(conditions, cond)
	}

	return Predicate{Conditions: conditions, Params: params}
}

// presence checks whether a text column is non-empty after trimming.
func presence(column, flag string) string {
	switch flag {
	case models.Yes:
		return "LENGTH(TRIM(COALESCE(" + column + ", ''))) > 0"
	case models.No:
		return "LENGTH(TRIM(COALESCE(" + column + ", ''))) = 0"
	default:
		return ""
	}
}
