// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/filters"
	"github.com/danielhkuo/canvass/models"
)

// Palette colors breakdown slices in order of first appearance.
var Palette = []string{"#0ea5e9", "#22c55e", "#f97316", "#e11d48", "#8b5cf6", "#14b8a6"}

// Dimension is a person column a breakdown groups by.
type Dimension struct {
	Name     string
	Column   string
	Fallback string
}

var (
	CasteDimension        = Dimension{Name: "caste", Column: "p.Caste", Fallback: "others"}
	MotherTongueDimension = Dimension{Name: "motherTongue", Column: "p.MotherTongue", Fallback: "others"}
)

// Label display-cases a merged group key.
func (d Dimension) Label(key string) string {
	if key == d.Fallback {
		return cases.Title(language.Und).String(key)
	}
	return cases.Upper(language.Und).String(key)
}

func breakdownQuery(d Dimension, pred filters.Predicate) string {
	label := filters.Normalized(d.Column)
	return fmt.Sprintf(`SELECT %s AS label, COUNT(*) AS n
      %s
      %s
      GROUP BY %s
      ORDER BY label`, label, personFamilyJoin, pred.Where(), label)
}

// counter keeps insertion order so colors follow first appearance.
type counter struct {
	keys   []string
	counts map[string]int
}

func (c counter) add(key string, n int) counter {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
	return c
}

// Breakdown counts matching people per category value across sources.
// Blank values fall into the dimension's fallback bucket.
func (s *Service) Breakdown(ctx context.Context, f models.Filter, d Dimension) ([]models.CategorySlice, error) {
	sources, pred := s.prepare(f)
	query := breakdownQuery(d, pred)

	merged, err := fold(ctx, s, OpBreakdown, sources, counter{counts: map[string]int{}},
		func(ctx context.Context, src *db.Source, acc counter) (counter, error) {
			rows, err := src.Query(ctx, query, pred.Params)
			if err != nil {
				return acc, fmt.Errorf("failed to query %s breakdown: %w", d.Name, err)
			}
			defer rows.Close()

			for rows.Next() {
				var key string
				var n int
				if err := rows.Scan(&key, &n); err != nil {
					return acc, fmt.Errorf("failed to scan %s breakdown: %w", d.Name, err)
				}
				if key == "" {
					key = d.Fallback
				}
				acc = acc.add(key, n)
			}
			return acc, rows.Err()
		})
	if err != nil {
		return nil, err
	}

	slices := make([]models.CategorySlice, 0, len(merged.keys))
	for i, key := range merged.keys {
		slices = append(slices, models.CategorySlice{
			Name:  d.Label(key),
			Value: merged.counts[key],
			Color: Palette[i%len(Palette)],
		})
	}
	return slices, nil
}

func genderAreaQuery(pred filters.Predicate) string {
	area := filters.Normalized("f.Area")
	gender := filters.Normalized("p.Gender")
	return fmt.Sprintf(`SELECT %s AS booth,
        COALESCE(SUM(CASE WHEN %s = 'male' THEN 1 ELSE 0 END), 0) AS male,
        COALESCE(SUM(CASE WHEN %s = 'female' THEN 1 ELSE 0 END), 0) AS female
      %s
      %s
      GROUP BY %s
      ORDER BY booth`, area, gender, gender, personFamilyJoin, pred.Where(), area)
}

const unknownArea = "unknown"

// GenderAreas splits matching people by gender per area, summed across
// sources and sorted by area.
func (s *Service) GenderAreas(ctx context.Context, f models.Filter) ([]models.GenderAreaSlice, error) {
	sources, pred := s.prepare(f)
	query := genderAreaQuery(pred)

	merged, err := fold(ctx, s, OpGenderAreas, sources, map[string]models.GenderAreaSlice{},
		func(ctx context.Context, src *db.Source, acc map[string]models.GenderAreaSlice) (map[string]models.GenderAreaSlice, error) {
			rows, err := src.Query(ctx, query, pred.Params)
			if err != nil {
				return acc, fmt.Errorf("failed to query gender by area: %w", err)
			}
			defer rows.Close()

			for rows.Next() {
				var area string
				var male, female int
				if err := rows.Scan(&area, &male, &female); err != nil {
					return acc, fmt.Errorf("failed to scan gender by area: %w", err)
				}
				if area == "" {
					area = unknownArea
				}
				cur := acc[area]
				cur.Booth = area
				cur.Male += male
				cur.Female += female
				acc[area] = cur
			}
			return acc, rows.Err()
		})
	if err != nil {
		return nil, err
	}

	out := make([]models.GenderAreaSlice, 0, len(merged))
	for _, slice := range merged {
		out = append(out, slice)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].Booth, out[j].Booth) < 0
	})
	return out, nil
}
