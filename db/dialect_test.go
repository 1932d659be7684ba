// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_Names(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.String())
	assert.Equal(t, "sqlite", SQLite.DriverName())
	assert.Equal(t, "postgres", Postgres.String())
	assert.Equal(t, "postgres", Postgres.DriverName())
}

func TestBind_SQLiteKeepsNames(t *testing.T) {
	query := "SELECT 1 WHERE a = @gender AND b LIKE @search AND c LIKE @search"

	got, args := SQLite.Bind(query, map[string]any{"search": "%x%", "gender": "female"})

	assert.Equal(t, query, got)
	assert.Equal(t, []any{
		sql.Named("gender", "female"),
		sql.Named("search", "%x%"),
	}, args)
}

func TestBind_SQLiteNoParams(t *testing.T) {
	got, args := SQLite.Bind("SELECT 1", nil)
	assert.Equal(t, "SELECT 1", got)
	assert.Empty(t, args)
}

func TestBind_PostgresPositional(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		params map[string]any
		want   string
		args   []any
	}{
		{
			name:   "order of first appearance",
			query:  "a = @gender AND b = @caste",
			params: map[string]any{"caste": "sc", "gender": "male"},
			want:   "a = $1 AND b = $2",
			args:   []any{"male", "sc"},
		},
		{
			name:   "repeated name reuses position",
			query:  "x LIKE @search OR y LIKE @search AND z = @ward",
			params: map[string]any{"search": "%a%", "ward": "ward 1"},
			want:   "x LIKE $1 OR y LIKE $1 AND z = $2",
			args:   []any{"%a%", "ward 1"},
		},
		{
			name:   "name ends at non-identifier byte",
			query:  "(m = @motherTongue)",
			params: map[string]any{"motherTongue": "tamil"},
			want:   "(m = $1)",
			args:   []any{"tamil"},
		},
		{
			name:   "unknown names and bare @ untouched",
			query:  "a = @other AND b = '@' AND c = @gender",
			params: map[string]any{"gender": "female"},
			want:   "a = @other AND b = '@' AND c = $1",
			args:   []any{"female"},
		},
		{
			name:  "no params",
			query: "SELECT COUNT(*) FROM PersonsDraft p WHERE p.IsActive = 1",
			want:  "SELECT COUNT(*) FROM PersonsDraft p WHERE p.IsActive = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := Postgres.Bind(tt.query, tt.params)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.args, args)
		})
	}
}
