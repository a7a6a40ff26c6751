package search

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastemap/internal/engine/provider"
	"tastemap/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(taURL, placesURL string) *Orchestrator {
	logger := discardLogger()
	client := provider.NewClient(provider.Config{
		RapidAPIKey:      "test-key",
		PlacesAPIKey:     "test-key",
		TravelAdvisorURL: taURL,
		PlacesURL:        placesURL,
	}, logger)
	return NewOrchestrator(
		provider.NewTravelAdvisor(client),
		provider.NewPlaces(client),
		logger,
	)
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func failHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

var searchParams = model.SearchParams{
	Location: model.Coordinate{Lat: 40.7128, Lng: -74.0060},
	RadiusM:  1000,
	MaxPrice: 4,
}

func TestSearchPrimaryPipeline(t *testing.T) {
	ta := httptest.NewServer(jsonHandler(`{"data":[
		{"location_id":"1","name":"Joe's Pizza","latitude":"40.713","longitude":"-74.005","rating":"4.6","num_reviews":"900","price_level":"$"},
		{"location_id":"2","name":"City History Museum","latitude":"40.714","longitude":"-74.004","category":{"name":"Museum"}},
		{"location_id":"3","name":"Nowhere Diner"},
		{"location_id":"4","name":"Corner Bistro","latitude":"40.715","longitude":"-74.003","rating":"4.1"}
	]}`))
	defer ta.Close()
	pl := httptest.NewServer(failHandler(http.StatusInternalServerError))
	defer pl.Close()

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), searchParams)
	require.NoError(t, err)

	// Museum filtered, coordinate-less record dropped.
	require.Len(t, results, 2)
	assert.Equal(t, "Joe's Pizza", results[0].Name)
	assert.Equal(t, "Corner Bistro", results[1].Name)
	assert.Equal(t, model.PriceCheap, results[0].Price)
	assert.NotEmpty(t, results[0].Distance)
}

func TestSearchMinRatingFilter(t *testing.T) {
	ta := httptest.NewServer(jsonHandler(`{"data":[
		{"location_id":"1","name":"High Bar","latitude":"40.713","longitude":"-74.005","rating":"4.6"},
		{"location_id":"2","name":"Low Bar","latitude":"40.714","longitude":"-74.004","rating":"3.2"}
	]}`))
	defer ta.Close()
	pl := httptest.NewServer(failHandler(http.StatusInternalServerError))
	defer pl.Close()

	params := searchParams
	params.MinRating = 4.0

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "High Bar", results[0].Name)
}

func TestSearchFallbackEmptyResult(t *testing.T) {
	ta := httptest.NewServer(failHandler(http.StatusInternalServerError))
	defer ta.Close()
	pl := httptest.NewServer(jsonHandler(`{"status":"OK","results":[]}`))
	defer pl.Close()

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), searchParams)
	require.NoError(t, err)

	// An empty provider result stays empty; it never becomes mock data.
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchFallbackUsed(t *testing.T) {
	ta := httptest.NewServer(failHandler(http.StatusBadGateway))
	defer ta.Close()
	pl := httptest.NewServer(jsonHandler(`{"status":"OK","results":[
		{"place_id":"p1","name":"Blue Ribbon Sushi",
		 "geometry":{"location":{"lat":40.7265,"lng":-74.0025}},
		 "rating":4.4,"user_ratings_total":1850,"price_level":3,
		 "vicinity":"119 Sullivan St","types":["restaurant","food"]}
	]}`))
	defer pl.Close()

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), searchParams)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Blue Ribbon Sushi", results[0].Name)
	assert.Equal(t, "Restaurant", results[0].Category)
}

func TestSearchBothProvidersFail(t *testing.T) {
	ta := httptest.NewServer(failHandler(http.StatusInternalServerError))
	defer ta.Close()
	pl := httptest.NewServer(failHandler(http.StatusForbidden))
	defer pl.Close()

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), searchParams)
	require.NoError(t, err)

	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, strings.HasPrefix(r.ID, "mock-"), "id %q", r.ID)
	}
}

func TestSearchNoDataSkipsFallback(t *testing.T) {
	// A 2xx body without a data array means the provider has nothing for
	// this area; the chain goes straight to mock results.
	ta := httptest.NewServer(jsonHandler(`{"message":"no results for region"}`))
	defer ta.Close()

	var fallbackHits atomic.Int32
	pl := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits.Add(1)
		io.WriteString(w, `{"status":"OK","results":[]}`)
	}))
	defer pl.Close()

	orch := newTestOrchestrator(ta.URL, pl.URL)
	results, err := orch.Search(context.Background(), searchParams)
	require.NoError(t, err)

	assert.Len(t, results, 5)
	assert.Equal(t, int32(0), fallbackHits.Load())
}
