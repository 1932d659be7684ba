// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/canvass/db"
	"github.com/danielhkuo/canvass/filters"
	"github.com/danielhkuo/canvass/metrics"
	"github.com/danielhkuo/canvass/models"
)

// Operation names, used in errors and metric labels
const (
	OpStats       = "stats"
	OpBreakdown   = "breakdown"
	OpGenderAreas = "gender_areas"
	OpVoterCount  = "voter_count"
	OpVoterPage   = "voter_page"
)

// QueryError is a storage failure on one source. It aborts the whole request.
type QueryError struct {
	Source    string
	Operation string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed on source %s: %v", e.Operation, e.Source, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Service runs the dashboard queries against the registry's sources and
// merges the per-source results.
type Service struct {
	sources *db.Registry
	metrics *metrics.Metrics
	compile func(models.Filter) filters.Predicate
}

func NewService(sources *db.Registry, m *metrics.Metrics) *Service {
	return &Service{sources: sources, metrics: m, compile: filters.Compile}
}

// prepare selects the active sources and compiles the shared predicate.
func (s *Service) prepare(f models.Filter) ([]*db.Source, filters.Predicate) {
	return s.sources.Select(f.Source), s.compile(f)
}

// fold runs step once per source in declaration order, threading the
// accumulator through. The first failing source aborts the fold.
func fold[T any](ctx context.Context, s *Service, op string, sources []*db.Source, acc T, step func(context.Context, *db.Source, T) (T, error)) (T, error) {
	for _, src := range sources {
		start := time.Now()
		next, err := step(ctx, src, acc)
		s.metrics.ObserveQuery(src.Key, op, time.Since(start), err)
		if err != nil {
			var zero T
			return zero, &QueryError{Source: src.Key, Operation: op, Err: err}
		}
		acc = next
	}
	return acc, nil
}

const personFamilyJoin = `FROM PersonsDraft p
      LEFT JOIN FamiliesDraft f ON f.LocalFamilyId = p.LocalFamilyId`
