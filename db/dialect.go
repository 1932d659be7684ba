// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"sort"
	"strconv"
	"strings"
)

// Dialect selects how named parameters are handed to the driver.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// Bind prepares a query written with @name placeholders for the driver.
// SQLite binds the names directly. Postgres has no named parameters, so each
// distinct @name becomes $n in order of first appearance.
func (d Dialect) Bind(query string, params map[string]any) (string, []any) {
	if d != Postgres {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		args := make([]any, 0, len(names))
		for _, name := range names {
			args = append(args, sql.Named(name, params[name]))
		}
		return query, args
	}

	var b strings.Builder
	var args []any
	positions := map[string]int{}

	for i := 0; i < len(query); i++ {
		if query[i] != '@' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && isNameByte(query[j]) {
			j++
		}
		name := query[i+1 : j]
		value, ok := params[name]
		if name == "" || !ok {
			b.WriteByte(query[i])
			continue
		}
		pos, seen := positions[name]
		if !seen {
			args = append(args, value)
			pos = len(args)
			positions[name] = pos
		}
		b.WriteString("$" + strconv.Itoa(pos))
		i = j - 1
	}

	return b.String(), args
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
