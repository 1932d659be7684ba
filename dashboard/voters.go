// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/filters"
	"github.com/danielhkuo/canvass/models"
)

func voterCountQuery(pred filters.Predicate) string {
	return fmt.Sprintf(`SELECT COUNT(*) %s %s`, personFamilyJoin, pred.Where())
}

// voterPageQuery interpolates limit and offset, which are validated
// integers; everything else is bound.
func voterPageQuery(pred filters.Predicate, limit, offset int) string {
	return fmt.Sprintf(`SELECT
        p.FullName,
        p.AgeYears,
        p.Gender,
        p.EPICId,
        p.Caste,
        p.MotherTongue,
        f.CardNumber,
        f.Area,
        f.FormId,
        f.AddressLine1,
        f.AddressLine2,
        f.City,
        f.District,
        f.State,
        f.Landmark,
        f.NextHouseMobile,
        f.Notes,
        (SELECT ph.PhoneNumber FROM PhonesDraft ph
          WHERE ph.LocalPersonId = p.LocalPersonId AND ph.IsPrimary = 1
          ORDER BY ph.LocalPhoneId
          LIMIT 1) AS PhoneNumber
      %s
      %s
      ORDER BY p.LocalPersonId DESC
      LIMIT %d OFFSET %d`, personFamilyJoin, pred.Where(), limit, offset)
}

type sourceCount struct {
	src   *db.Source
	total int
}

type page struct {
	skip int // rows of the window still to skip
	need int // rows of the window still to fill
	rows []models.VoterRecord
}

// Voters lists one page of matching people. Sources are concatenated in
// declaration order, each ordered by newest person first, and the window
// [offset, offset+limit) is cut from that concatenation. Total is the full
// match count across sources.
func (s *Service) Voters(ctx context.Context, f models.Filter) (models.VoterResponse, error) {
	sources, pred := s.prepare(f)

	counts, err := fold(ctx, s, OpVoterCount, sources, []sourceCount(nil),
		func(ctx context.Context, src *db.Source, acc []sourceCount) ([]sourceCount, error) {
			var n int
			if err := src.QueryRow(ctx, voterCountQuery(pred), pred.Params).Scan(&n); err != nil {
				return acc, fmt.Errorf("failed to count voters: %w", err)
			}
			return append(acc, sourceCount{src: src, total: n}), nil
		})
	if err != nil {
		return models.VoterResponse{}, err
	}

	total := 0
	totals := make(map[*db.Source]int, len(counts))
	for _, c := range counts {
		total += c.total
		totals[c.src] = c.total
	}

	result, err := fold(ctx, s, OpVoterPage, sources, page{skip: f.Offset, need: f.Limit, rows: []models.VoterRecord{}},
		func(ctx context.Context, src *db.Source, acc page) (page, error) {
			available := totals[src]
			if acc.need == 0 || available == 0 {
				return acc, nil
			}
			if acc.skip >= available {
				acc.skip -= available
				return acc, nil
			}

			limit := min(acc.need, available-acc.skip)
			rows, err := sourcePage(ctx, src, pred, limit, acc.skip)
			if err != nil {
				return acc, err
			}
			acc.rows = append(acc.rows, rows...)
			acc.need -= len(rows)
			acc.skip = 0
			return acc, nil
		})
	if err != nil {
		return models.VoterResponse{}, err
	}

	for i := range result.rows {
		result.rows[i].SlNo = f.Offset + i + 1
	}

	return models.VoterResponse{Total: total, Data: result.rows}, nil
}

func sourcePage(ctx context.Context, src *db.Source, pred filters.Predicate, limit, offset int) ([]models.VoterRecord, error) {
	rows, err := src.Query(ctx, voterPageQuery(pred, limit, offset), pred.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var out []models.VoterRecord
	for rows.Next() {
		var r voterRow
		if err := rows.Scan(
			&r.FullName, &r.AgeYears, &r.Gender, &r.EPICId, &r.Caste, &r.MotherTongue,
			&r.CardNumber, &r.Area, &r.FormId, &r.AddressLine1, &r.AddressLine2,
			&r.City, &r.District, &r.State, &r.Landmark, &r.NextHouseMobile, &r.Notes,
			&r.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		out = append(out, r.record(src.Key))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}
	return out, nil
}

// voterRow mirrors the page query's columns.
type voterRow struct {
	FullName        sql.NullString
	AgeYears        sql.NullInt64
	Gender          sql.NullString
	EPICId          sql.NullString
	Caste           sql.NullString
	MotherTongue    sql.NullString
	CardNumber      sql.NullString
	Area            sql.NullString
	FormId          sql.NullString
	AddressLine1    sql.NullString
	AddressLine2    sql.NullString
	City            sql.NullString
	District        sql.NullString
	State           sql.NullString
	Landmark        sql.NullString
	NextHouseMobile sql.NullString
	Notes           sql.NullString
	PhoneNumber     sql.NullString
}

// record flattens a row into the API shape. Display fields always get a
// fallback; optional fields stay empty and are omitted from JSON.
func (r voterRow) record(dataset string) models.VoterRecord {
	formID := value(r.FormId)

	rec := models.VoterRecord{
		CardNo:         orDefault(r.CardNumber, "—"),
		Name:           orDefault(r.FullName, "Unknown"),
		Gender:         displayGender(value(r.Gender)),
		NewAddress:     composeAddress(r.AddressLine1, r.AddressLine2, r.Area, r.City, r.District, r.State),
		VoterID:        orDefault(r.EPICId, "N/A"),
		ParNo:          "N/A",
		WardName:       orDefault(r.Area, "N/A"),
		WardNo:         "—",
		Caste:          value(r.Caste),
		MotherTongue:   value(r.MotherTongue),
		PhoneNo:        value(r.PhoneNumber),
		RationCardNo:   value(r.CardNumber),
		Landmark:       value(r.Landmark),
		NextHouseMobNo: value(r.NextHouseMobile),
		Complaint:      value(r.Notes),
		Dataset:        dataset,
	}
	if r.AgeYears.Valid {
		rec.Age = int(r.AgeYears.Int64)
	}
	if rec.PhoneNo == "" {
		rec.PhoneNo = rec.NextHouseMobNo
	}
	if formID != "" && formID != "0" {
		rec.ParNo = "FORM-" + formID
		rec.WardNo = formID
	}
	return rec
}

func value(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return strings.TrimSpace(ns.String)
}

func orDefault(ns sql.NullString, fallback string) string {
	if v := value(ns); v != "" {
		return v
	}
	return fallback
}

func displayGender(raw string) string {
	if raw == "" {
		return "Other"
	}
	return cases.Title(language.Und).String(strings.ToLower(raw))
}

func composeAddress(parts ...sql.NullString) string {
	var nonEmpty []string
	for _, p := range parts {
		if v := value(p); v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	if len(nonEmpty) == 0 {
		return "Address not available"
	}
	return strings.Join(nonEmpty, ", ")
}
