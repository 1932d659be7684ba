// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/canvass/models"
	"github.com/danielhkuo/canvass/testutil"
)

// TestConcurrentVoterPages verifies that simultaneous page requests against
// the shared registry each get their own consistent window
func TestConcurrentVoterPages(t *testing.T) {
	handler, _ := setupHandler(t)

	numRequests := 16
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			offset := idx % 8
			req := testutil.MakeRequest("GET", fmt.Sprintf("/api/dashboard/voters?limit=1&offset=%d", offset), nil, nil)
			w := httptest.NewRecorder()

			handler.Voters(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Request %d: expected status 200, got %d", idx, w.Code)
				return
			}

			var resp models.VoterResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Errorf("Request %d: failed to decode: %v", idx, err)
				return
			}
			if resp.Total != 8 || len(resp.Data) != 1 || resp.Data[0].SlNo != offset+1 {
				t.Errorf("Request %d: unexpected page %+v", idx, resp)
				return
			}
			successCount.Add(1)
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRequests {
		t.Errorf("Expected %d successful requests, got %d", numRequests, successCount.Load())
	}
}

// TestConcurrentMixedEndpoints runs every endpoint in parallel and checks the
// stats total stays stable
func TestConcurrentMixedEndpoints(t *testing.T) {
	handler, _ := setupHandler(t)

	endpoints := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/api/dashboard/stats?source=all", handler.Stats},
		{"/api/dashboard/caste?gender=female", handler.Caste},
		{"/api/dashboard/mother-tongue", handler.MotherTongue},
		{"/api/dashboard/gender-areas", handler.GenderAreas},
		{"/api/dashboard/voters?ageGroup=18-25", handler.Voters},
	}

	var failures atomic.Int32
	var wg sync.WaitGroup

	for round := 0; round < 5; round++ {
		for _, ep := range endpoints {
			wg.Add(1)
			go func(path string, h http.HandlerFunc) {
				defer wg.Done()

				w := httptest.NewRecorder()
				h(w, testutil.MakeRequest("GET", path, nil, nil))

				if w.Code != http.StatusOK {
					failures.Add(1)
				}
			}(ep.path, ep.handler)
		}
	}

	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected no failures, got %d", failures.Load())
	}

	w := httptest.NewRecorder()
	handler.Stats(w, testutil.MakeRequest("GET", "/api/dashboard/stats", nil, nil))

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)
	if stats.TotalVoters != 8 {
		t.Errorf("Expected 8 voters after concurrent reads, got %d", stats.TotalVoters)
	}
}
