// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	_ "github.com/lib/pq"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/models"
)

// ErrNoSources means no configured source resolved to an existing store.
var ErrNoSources = errors.New("no data sources found: set SCANNER_DB/REVIEWED_DB or place scanner.db and reviewed.db next to the base directory")

// Spec describes one candidate source before it is opened.
type Spec struct {
	Key     string
	Target  string // absolute sqlite path or postgres URL
	Dialect Dialect
}

// Source is an opened, read-only data source.
type Source struct {
	Key     string
	Target  string
	Dialect Dialect
	DB      *sql.DB
}

// Query runs a @name-parameterized query against the source.
func (s *Source) Query(ctx context.Context, query string, params map[string]any) (*sql.Rows, error) {
	q, args := s.Dialect.Bind(query, params)
	return s.DB.QueryContext(ctx, q, args...)
}

// QueryRow runs a @name-parameterized single-row query against the source.
func (s *Source) QueryRow(ctx context.Context, query string, params map[string]any) *sql.Row {
	q, args := s.Dialect.Bind(query, params)
	return s.DB.QueryRowContext(ctx, q, args...)
}

// Specs resolves the known sources in declaration order: an explicit
// override wins, otherwise ../<key>.db relative to the base directory.
func Specs(cfg cliparse.Config) ([]Spec, error) {
	base, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	candidates := []struct {
		key      string
		override string
	}{
		{models.SourceScanner, cfg.ScannerDB},
		{models.SourceReviewed, cfg.ReviewedDB},
	}

	specs := make([]Spec, 0, len(candidates))
	for _, c := range candidates {
		if isPostgresURL(c.override) {
			specs = append(specs, Spec{Key: c.key, Target: c.override, Dialect: Postgres})
			continue
		}

		var path string
		if c.override != "" {
			path, err = filepath.Abs(c.override)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s path: %w", c.key, err)
			}
		} else {
			path = filepath.Join(base, "..", c.key+".db")
		}
		specs = append(specs, Spec{Key: c.key, Target: path, Dialect: SQLite})
	}

	return specs, nil
}

// Open opens every spec whose store exists. Missing sqlite files and
// unreachable postgres servers are skipped; zero resolved sources is
// ErrNoSources.
func Open(ctx context.Context, specs []Spec) (*Registry, error) {
	var sources []*Source

	for _, spec := range specs {
		src, err := openSource(ctx, spec)
		if err != nil {
			for _, opened := range sources {
				opened.DB.Close()
			}
			return nil, err
		}
		if src == nil {
			continue
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	return NewRegistry(sources...), nil
}

func openSource(ctx context.Context, spec Spec) (*Source, error) {
	switch spec.Dialect {
	case Postgres:
		conn, err := sql.Open(spec.Dialect.DriverName(), spec.Target)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", spec.Key, err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			slog.Warn("source unreachable, skipping", "source", spec.Key, "error", err)
			return nil, nil
		}
		slog.Info("source opened", "source", spec.Key, "driver", spec.Dialect.String())
		return &Source{Key: spec.Key, Target: spec.Target, Dialect: spec.Dialect, DB: conn}, nil

	default:
		info, err := os.Stat(spec.Target)
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("source not found, skipping", "source", spec.Key, "path", spec.Target)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", spec.Target, err)
		}
		if info.IsDir() {
			return nil, nil
		}

		conn, err := sql.Open(spec.Dialect.DriverName(), readOnlyDSN(spec.Target))
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", spec.Key, err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to open %s: %w", spec.Key, err)
		}
		slog.Info("source opened",
			"source", spec.Key,
			"driver", spec.Dialect.String(),
			"path", spec.Target,
			"size", humanize.Bytes(uint64(info.Size())),
		)
		return &Source{Key: spec.Key, Target: spec.Target, Dialect: spec.Dialect, DB: conn}, nil
	}
}

// readOnlyDSN builds a sqlite URI that opens the file read-only and rejects
// writes on every pooled connection.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	u.RawQuery = "mode=ro&_pragma=query_only(1)"
	return u.String()
}

func isPostgresURL(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// Registry holds the sources opened at startup. It is never mutated after
// construction, so handlers share it freely.
type Registry struct {
	sources []*Source
}

func NewRegistry(sources ...*Source) *Registry {
	return &Registry{sources: sources}
}

// Select returns every source for "" or "all", otherwise the sources whose
// key matches. The result may be empty.
func (r *Registry) Select(key string) []*Source {
	if key == "" || key == models.SourceAll {
		return r.sources
	}
	var selected []*Source
	for _, src := range r.sources {
		if src.Key == key {
			selected = append(selected, src)
		}
	}
	return selected
}

func (r *Registry) Len() int {
	return len(r.sources)
}

// Keys lists source keys in declaration order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.sources))
	for _, src := range r.sources {
		keys = append(keys, src.Key)
	}
	return keys
}

func (r *Registry) Close() error {
	var errs []error
	for _, src := range r.sources {
		if err := src.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", src.Key, err))
		}
	}
	return errors.Join(errs...)
}
