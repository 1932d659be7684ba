// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/canvass/metrics"
	"github.com/danielhkuo/canvass/models"
	"github.com/danielhkuo/canvass/testutil"
)

// setupHandler builds two sources: scanner holds 3 active females aged
// 18-25 and reviewed holds 2, plus non-matching people in each.
func setupHandler(t *testing.T) (*DashboardHandler, *metrics.Metrics) {
	t.Helper()
	dir := t.TempDir()

	scanner := testutil.NewSource(t, dir, models.SourceScanner)
	ward := scanner.AddFamily(testutil.Family{Area: "Ward 7", FormID: 3, CardNumber: "RC-3"})
	scanner.AddPerson(testutil.Person{FamilyID: ward, Name: "Anita", Age: 19, Gender: "female", EPIC: "S1", Caste: "OBC"})
	scanner.AddPerson(testutil.Person{FamilyID: ward, Name: "Bhavya", Age: 24, Gender: "Female", EPIC: "S2", Caste: "SC"})
	scanner.AddPerson(testutil.Person{Name: "Chitra", Age: 25, Gender: "female", Caste: "OBC"})
	scanner.AddPerson(testutil.Person{FamilyID: ward, Name: "Dinesh", Age: 21, Gender: "male", EPIC: "S3"})
	scanner.AddPerson(testutil.Person{Name: "Esha", Age: 26, Gender: "female"})
	scanner.AddPerson(testutil.Person{Name: "Farah", Age: 20, Gender: "female", Inactive: true})

	reviewed := testutil.NewSource(t, dir, models.SourceReviewed)
	reviewed.AddPerson(testutil.Person{Name: "Gita", Age: 18, Gender: "FEMALE", Caste: "ST"})
	reviewed.AddPerson(testutil.Person{Name: "Hema", Age: 22, Gender: "female"})
	reviewed.AddPerson(testutil.Person{Name: "Irfan", Age: 70, Gender: "male"})

	m := metrics.New()
	return NewDashboardHandler(testutil.OpenRegistry(t, scanner, reviewed), m), m
}

func TestHealth(t *testing.T) {
	handler, _ := setupHandler(t)

	w := httptest.NewRecorder()
	handler.Health(w, testutil.MakeRequest("GET", "/api/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Sources)
	assert.Equal(t, []string{models.SourceScanner, models.SourceReviewed}, resp.Keys)
}

func TestVoters_FemaleYouthAcrossSources(t *testing.T) {
	handler, _ := setupHandler(t)

	req := testutil.MakeRequest("GET", "/api/dashboard/voters?gender=female&ageGroup=18-25&limit=10&offset=0&source=all", nil, nil)
	w := httptest.NewRecorder()
	handler.Voters(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoterResponse
	testutil.AssertJSON(t, w, &resp)

	assert.Equal(t, 5, resp.Total)
	require.Len(t, resp.Data, 5)

	wantDataset := []string{
		models.SourceScanner, models.SourceScanner, models.SourceScanner,
		models.SourceReviewed, models.SourceReviewed,
	}
	for i, row := range resp.Data {
		assert.Equal(t, i+1, row.SlNo)
		assert.Equal(t, "Female", row.Gender)
		assert.Equal(t, wantDataset[i], row.Dataset)
	}
}

func TestStats(t *testing.T) {
	handler, _ := setupHandler(t)

	tests := []struct {
		name  string
		query string
		want  models.StatsResponse
	}{
		{
			name:  "everything",
			query: "",
			want: models.StatsResponse{
				TotalVoters: 8, MaleVoters: 2, FemaleVoters: 6, OtherVoters: 0,
				YouthVoters: 7, DuplicateVoters: 0, VoterCountOnHouse: 1, TotalBooth: 3, TotalEvent: 1,
			},
		},
		{
			name:  "reviewed only",
			query: "?source=reviewed",
			want: models.StatsResponse{
				TotalVoters: 3, MaleVoters: 1, FemaleVoters: 2,
				YouthVoters: 2, TotalBooth: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Stats(w, testutil.MakeRequest("GET", "/api/dashboard/stats"+tt.query, nil, nil))

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.StatsResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestCaste(t *testing.T) {
	handler, _ := setupHandler(t)

	w := httptest.NewRecorder()
	handler.Caste(w, testutil.MakeRequest("GET", "/api/dashboard/caste?gender=female", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.CategorySlice
	testutil.AssertJSON(t, w, &resp)

	// scanner: "" (Esha), obc (Anita, Chitra), sc (Bhavya); reviewed: "" (Hema), st (Gita)
	assert.Equal(t, []models.CategorySlice{
		{Name: "Others", Value: 2, Color: "#0ea5e9"},
		{Name: "OBC", Value: 2, Color: "#22c55e"},
		{Name: "SC", Value: 1, Color: "#f97316"},
		{Name: "ST", Value: 1, Color: "#e11d48"},
	}, resp)
}

func TestMotherTongue_EmptyIsArray(t *testing.T) {
	handler, _ := setupHandler(t)

	w := httptest.NewRecorder()
	handler.MotherTongue(w, testutil.MakeRequest("GET", "/api/dashboard/mother-tongue?search=nobody", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGenderAreas(t *testing.T) {
	handler, _ := setupHandler(t)

	w := httptest.NewRecorder()
	handler.GenderAreas(w, testutil.MakeRequest("GET", "/api/dashboard/gender-areas", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.GenderAreaSlice
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, []models.GenderAreaSlice{
		{Booth: "unknown", Male: 1, Female: 4},
		{Booth: "ward 7", Male: 1, Female: 2},
	}, resp)
}

func TestInvalidFilters(t *testing.T) {
	handler, m := setupHandler(t)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"bad gender", "?gender=unknown", "invalid gender: must be one of male, female, other, all"},
		{"bad age group", "?ageGroup=10-17", "invalid ageGroup: must be one of 18-25, 26-35, 36-45, 46-55, 56-65, 65+, all"},
		{"bad source", "?source=archive", "invalid source: must be one of scanner, reviewed, all"},
		{"limit too large", "?limit=1001", "invalid limit: must be between 1 and 1000"},
		{"limit zero", "?limit=0", "invalid limit: must be between 1 and 1000"},
		{"negative offset", "?offset=-1", "invalid offset: must be >= 0"},
		{"non-numeric limit", "?limit=ten", "invalid limit: must be an integer"},
	}

	endpoints := map[string]http.HandlerFunc{
		"stats":         handler.Stats,
		"caste":         handler.Caste,
		"mother-tongue": handler.MotherTongue,
		"gender-areas":  handler.GenderAreas,
		"voters":        handler.Voters,
	}

	for _, tt := range tests {
		for name, endpoint := range endpoints {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				w := httptest.NewRecorder()
				endpoint(w, testutil.MakeRequest("GET", "/api/dashboard/"+name+tt.query, nil, nil))

				testutil.AssertStatus(t, w, http.StatusBadRequest)
				assert.JSONEq(t, `{"message":"`+tt.message+`"}`, w.Body.String())
			})
		}
	}

	assert.Equal(t, float64(len(tests)*len(endpoints)), promtest.ToFloat64(m.ValidationFailures))
}

func TestQueryFailureIsBadRequest(t *testing.T) {
	dir := t.TempDir()
	broken := testutil.NewSource(t, dir, models.SourceScanner)
	_, err := broken.DB.Exec(`DROP TABLE PhonesDraft; DROP TABLE PersonsDraft;`)
	require.NoError(t, err)

	handler := NewDashboardHandler(testutil.OpenRegistry(t, broken), nil)

	w := httptest.NewRecorder()
	handler.Stats(w, testutil.MakeRequest("GET", "/api/dashboard/stats", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Contains(t, resp.Message, "stats query failed on source scanner")
}
