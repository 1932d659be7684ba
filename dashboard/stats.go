// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"fmt"

	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/filters"
	"github.com/danielhkuo/canvass/models"
)

const duplicateCondition = "LENGTH(TRIM(COALESCE(p.EPICId, ''))) > 0"

// statsQuery counts an empty area as "unknown", the same bucket the gender
// by area breakdown uses, so totalBooth matches its number of bars.
func statsQuery(pred filters.Predicate) string {
	gender := filters.Normalized("p.Gender")
	return fmt.Sprintf(`SELECT
        COUNT(*),
        COALESCE(SUM(CASE WHEN %[1]s = 'male' THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN %[1]s = 'female' THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN %[1]s NOT IN ('male', 'female') THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN p.AgeYears BETWEEN 18 AND 30 THEN 1 ELSE 0 END), 0),
        COUNT(DISTINCT f.LocalFamilyId),
        COUNT(DISTINCT COALESCE(NULLIF(%[2]s, ''), '%[3]s')),
        COUNT(DISTINCT f.FormId)
      %[4]s
      %[5]s`, gender, filters.Normalized("f.Area"), unknownArea, personFamilyJoin, pred.Where())
}

// duplicateQuery counts every row whose EPIC id appears more than once,
// including the first occurrence.
func duplicateQuery(pred filters.Predicate) string {
	return fmt.Sprintf(`SELECT COALESCE(SUM(d.n), 0) FROM (
          SELECT p.EPICId, COUNT(*) AS n
          %s
          %s
          GROUP BY p.EPICId
          HAVING COUNT(*) > 1
        ) d`, personFamilyJoin, pred.With(duplicateCondition).Where())
}

// Stats computes the headline counters. With several sources every counter
// is the sum of the per-source values; duplicates never span sources.
func (s *Service) Stats(ctx context.Context, f models.Filter) (models.StatsResponse, error) {
	sources, pred := s.prepare(f)

	return fold(ctx, s, OpStats, sources, models.StatsResponse{},
		func(ctx context.Context, src *db.Source, acc models.StatsResponse) (models.StatsResponse, error) {
			stats, err := sourceStats(ctx, src, pred)
			if err != nil {
				return acc, err
			}
			return acc.Add(stats), nil
		})
}

func sourceStats(ctx context.Context, src *db.Source, pred filters.Predicate) (models.StatsResponse, error) {
	var st models.StatsResponse
	err := src.QueryRow(ctx, statsQuery(pred), pred.Params).Scan(
		&st.TotalVoters, &st.MaleVoters, &st.FemaleVoters, &st.OtherVoters,
		&st.YouthVoters, &st.VoterCountOnHouse, &st.TotalBooth, &st.TotalEvent,
	)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to query stats: %w", err)
	}

	if err := src.QueryRow(ctx, duplicateQuery(pred), pred.Params).Scan(&st.DuplicateVoters); err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to query duplicates: %w", err)
	}

	return st, nil
}
