// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/canvass/cliparse"
	"github.com/danielhkuo/canvass/db"
)

// Family is a FamiliesDraft row. Empty strings are stored as NULL.
type Family struct {
	ID              int64
	FormID          int64
	CardNumber      string
	Area            string
	AddressLine1    string
	AddressLine2    string
	City            string
	District        string
	State           string
	Landmark        string
	NextHouseMobile string
	Notes           string
}

// Person is a PersonsDraft row. Empty strings are stored as NULL and a zero
// FamilyID leaves the person without a household.
type Person struct {
	ID           int64
	FamilyID     int64
	Name         string
	Age          int
	Gender       string
	EPIC         string
	Caste        string
	MotherTongue string
	Inactive     bool
}

// Phone is a PhonesDraft row.
type Phone struct {
	PersonID int64
	Number   string
	Primary  bool
}

// Source is a writable sqlite fixture following the shared schema.
type Source struct {
	t    *testing.T
	Key  string
	Path string
	DB   *sql.DB
}

// NewSource creates <dir>/<key>.db with the full schema. The writable
// connection is closed when the test ends.
func NewSource(t *testing.T, dir, key string) *Source {
	t.Helper()

	path := filepath.Join(dir, key+".db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open fixture %s: %v", key, err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create fixture schema: %v", err)
	}

	return &Source{t: t, Key: key, Path: path, DB: conn}
}

// AddFamily inserts a household and returns its id
func (s *Source) AddFamily(f Family) int64 {
	s.t.Helper()

	res, err := s.DB.Exec(`
		INSERT INTO FamiliesDraft (LocalFamilyId, FormId, CardNumber, Area, AddressLine1, AddressLine2,
			City, District, State, Landmark, NextHouseMobile, Notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullID(f.ID), nullID(f.FormID), null(f.CardNumber), null(f.Area), null(f.AddressLine1),
		null(f.AddressLine2), null(f.City), null(f.District), null(f.State), null(f.Landmark),
		null(f.NextHouseMobile), null(f.Notes))
	if err != nil {
		s.t.Fatalf("Failed to create test family: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

// AddPerson inserts a person and returns its id
func (s *Source) AddPerson(p Person) int64 {
	s.t.Helper()

	active := 1
	if p.Inactive {
		active = 0
	}

	res, err := s.DB.Exec(`
		INSERT INTO PersonsDraft (LocalPersonId, LocalFamilyId, FullName, AgeYears, Gender, EPICId,
			Caste, MotherTongue, IsActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullID(p.ID), nullID(p.FamilyID), null(p.Name), p.Age, null(p.Gender), null(p.EPIC),
		null(p.Caste), null(p.MotherTongue), active)
	if err != nil {
		s.t.Fatalf("Failed to create test person: %v", err)
	}

	id, _ := res.LastInsertId()
	return id
}

// AddPeople inserts several people sharing one template
func (s *Source) AddPeople(n int, p Person) {
	s.t.Helper()
	for i := 0; i < n; i++ {
		s.AddPerson(p)
	}
}

// AddPhone inserts a phone number for a person
func (s *Source) AddPhone(ph Phone) {
	s.t.Helper()

	primary := 0
	if ph.Primary {
		primary = 1
	}
	_, err := s.DB.Exec(`
		INSERT INTO PhonesDraft (LocalPersonId, PhoneNumber, IsPrimary)
		VALUES (?, ?, ?)
	`, ph.PersonID, null(ph.Number), primary)
	if err != nil {
		s.t.Fatalf("Failed to create test phone: %v", err)
	}
}

// Spec describes the fixture as a registry candidate
func (s *Source) Spec() db.Spec {
	return db.Spec{Key: s.Key, Target: s.Path, Dialect: db.SQLite}
}

// OpenRegistry opens the fixtures read-only, in the given order
func OpenRegistry(t *testing.T, sources ...*Source) *db.Registry {
	t.Helper()

	specs := make([]db.Spec, 0, len(sources))
	for _, s := range sources {
		specs = append(specs, s.Spec())
	}

	registry, err := db.Open(context.Background(), specs)
	if err != nil {
		t.Fatalf("Failed to open registry: %v", err)
	}
	t.Cleanup(func() { registry.Close() })

	return registry
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4000,
		AllowedOrigins: []string{"https://dashboard.example"},
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

func null(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
