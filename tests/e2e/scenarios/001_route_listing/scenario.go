package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	daysOfData      = 7
	requestsPerUnit = 100 // route i gets (i+1)*requestsPerUnit requests per day
)

var routes = []string{"/", "/tv/[id]", "/search", "/settings"}

// durationBuckets must match the server's duration boundary set.
var durationBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// ### End - fixed configs

type percentileStats struct {
	Count     int64   `json:"count"`
	P75       float64 `json:"p75"`
	P90       float64 `json:"p90"`
	P95       float64 `json:"p95"`
	P99       float64 `json:"p99"`
	Histogram []int64 `json:"histogram"`
}

type statusCounts struct {
	Success     int64 `json:"success"`
	Redirect    int64 `json:"redirect"`
	ClientError int64 `json:"clientError"`
	ServerError int64 `json:"serverError"`
}

type rollupInput struct {
	Date         string                      `json:"date"`
	Kind         string                      `json:"kind"`
	Value        string                      `json:"value,omitempty"`
	Pageviews    int64                       `json:"pageviews"`
	RequestCount int64                       `json:"requestCount"`
	Metrics      map[string]*percentileStats `json:"metrics,omitempty"`
	StatusCodes  *statusCounts               `json:"statusCodes,omitempty"`
}

type listItem struct {
	Value   string `json:"value"`
	Summary *struct {
		RequestCount int64   `json:"requestCount"`
		Pageviews    int64   `json:"pageviews"`
		ErrorRate    float64 `json:"errorRate"`
	} `json:"summary"`
}

type listing struct {
	Items []listItem `json:"items"`
	Total int        `json:"total"`
}

type series struct {
	Series []struct {
		Date         time.Time `json:"date"`
		RequestCount int64     `json:"requestCount"`
	} `json:"series"`
	Aggregated *struct {
		RequestCount int64 `json:"requestCount"`
	} `json:"aggregated"`
}

// main runs the e2e scenario: 001_route_listing
//
// This scenario tests the end-to-end flow of rollup ingestion, route listing,
// and per-route time series queries. It ingests 7 days of deterministic daily
// route rollups and verifies the aggregated listing order, totals, error rate,
// and the chronological detail series.
//
// What it tests:
//   - Rollup batch ingestion via POST /v1/rollups
//   - Upsert semantics when the same day is re-ingested
//   - Route listing via GET /v1/dimensions/route with request-count ordering,
//     truncation, and pre-truncation totals
//   - Detail time series via GET /v1/dimensions/route/series
//
// Expected results:
//   - All ingest requests return 202 Accepted
//   - The listing orders routes by summed request count descending:
//     /settings (2800), /search (2100), /tv/[id] (1400), / (700)
//   - limit=2 truncates the items while total stays 4
//   - The combined error rate for /settings is 2% (56 errors over 2800)
//   - The /tv/[id] series holds 7 chronological points of 200 requests each,
//     aggregated to 1400
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the vitals insights API server

	fmt.Println("Starting e2e scenario: 001_route_listing")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DAYS_OF_DATA: %d\n", daysOfData)
	fmt.Printf("ROUTES: %v\n", routes)
	fmt.Println()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	client := &http.Client{Timeout: 30 * time.Second}

	// Ingest one batch per day, oldest first.
	fmt.Printf("Ingesting %d days of rollups...\n", daysOfData)
	for j := 0; j < daysOfData; j++ {
		date := today.AddDate(0, 0, j-daysOfData+1).Format("2006-01-02")
		batch := make([]rollupInput, 0, len(routes))
		for i, route := range routes {
			batch = append(batch, makeRollup(date, route, i))
		}
		if err := postRollups(client, baseURL, batch); err != nil {
			fail("ingest day %s: %v", date, err)
		}
		fmt.Printf("  day %s: %d records accepted\n", date, len(batch))
	}

	// Re-ingest the newest day to confirm upserts do not double-count.
	fmt.Println("Re-ingesting the newest day (upsert check)...")
	batch := make([]rollupInput, 0, len(routes))
	for i, route := range routes {
		batch = append(batch, makeRollup(today.Format("2006-01-02"), route, i))
	}
	if err := postRollups(client, baseURL, batch); err != nil {
		fail("re-ingest: %v", err)
	}
	fmt.Println()

	checkFullListing(client, baseURL)
	checkTruncatedListing(client, baseURL)
	checkSeries(client, baseURL, today)

	fmt.Println()
	fmt.Println("Scenario 001_route_listing PASSED")
}

// makeRollup builds the deterministic daily rollup for route index i. Route i
// serves (i+1)*100 requests per day, all landing in histogram bucket i+4, with
// a fixed 2% server error rate.
func makeRollup(date, route string, i int) rollupInput {
	requests := int64((i + 1) * requestsPerUnit)
	hist := make([]int64, len(durationBuckets))
	hist[i+4] = requests
	errors := requests / 50
	return rollupInput{
		Date:         date,
		Kind:         "route",
		Value:        route,
		Pageviews:    requests + 50,
		RequestCount: requests,
		Metrics: map[string]*percentileStats{
			"duration": {Count: requests, Histogram: hist},
		},
		StatusCodes: &statusCounts{
			Success:     requests - errors,
			ServerError: errors,
		},
	}
}

func checkFullListing(client *http.Client, baseURL string) {
	fmt.Println("Checking full route listing...")
	var got listing
	getJSON(client, baseURL+"/v1/dimensions/route?days=7", &got)

	expectEqual("listing total", 4, got.Total)
	expectEqual("listing items", 4, len(got.Items))

	wantOrder := []string{"/settings", "/search", "/tv/[id]", "/"}
	wantRequests := []int64{2800, 2100, 1400, 700}
	for i, item := range got.Items {
		expectEqual(fmt.Sprintf("item %d value", i), wantOrder[i], item.Value)
		if item.Summary == nil {
			fail("item %d has no summary", i)
		}
		expectEqual(fmt.Sprintf("item %d requestCount", i), wantRequests[i], item.Summary.RequestCount)
	}

	// 2 errors per 100 requests on every day.
	expectEqual("/settings errorRate", 2.0, got.Items[0].Summary.ErrorRate)
	fmt.Println("  full listing OK")
}

func checkTruncatedListing(client *http.Client, baseURL string) {
	fmt.Println("Checking truncated listing (limit=2)...")
	var got listing
	getJSON(client, baseURL+"/v1/dimensions/route?days=7&limit=2", &got)

	expectEqual("truncated total", 4, got.Total)
	expectEqual("truncated items", 2, len(got.Items))
	expectEqual("first item", "/settings", got.Items[0].Value)
	fmt.Println("  truncated listing OK")
}

func checkSeries(client *http.Client, baseURL string, today time.Time) {
	fmt.Println("Checking /tv/[id] detail series...")
	var got series
	getJSON(client, baseURL+"/v1/dimensions/route/series?value=%2Ftv%2F%5Bid%5D&days=7", &got)

	expectEqual("series points", daysOfData, len(got.Series))
	for j, point := range got.Series {
		wantDate := today.AddDate(0, 0, j-daysOfData+1)
		if !point.Date.Equal(wantDate) {
			fail("series point %d: date %s, want %s", j, point.Date, wantDate)
		}
		expectEqual(fmt.Sprintf("series point %d requestCount", j), int64(200), point.RequestCount)
	}
	if got.Aggregated == nil {
		fail("series has no aggregated summary")
	}
	expectEqual("aggregated requestCount", int64(1400), got.Aggregated.RequestCount)
	fmt.Println("  detail series OK")
}

func postRollups(client *http.Client, baseURL string, batch []rollupInput) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	resp, err := client.Post(baseURL+"/v1/rollups", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func getJSON(client *http.Client, url string, out any) {
	resp, err := client.Get(url)
	if err != nil {
		fail("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fail("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fail("GET %s: decode: %v", url, err)
	}
}

func expectEqual[T comparable](what string, want, got T) {
	if want != got {
		fail("%s: got %v, want %v", what, got, want)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
