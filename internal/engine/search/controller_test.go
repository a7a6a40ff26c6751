package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastemap/internal/model"
)

type searchFunc func(ctx context.Context, params model.SearchParams) ([]model.Restaurant, error)

func (f searchFunc) Search(ctx context.Context, params model.SearchParams) ([]model.Restaurant, error) {
	return f(ctx, params)
}

type recordingSearcher struct {
	mu    sync.Mutex
	calls []model.SearchParams
}

func (r *recordingSearcher) Search(_ context.Context, params model.SearchParams) ([]model.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, params)
	return []model.Restaurant{{ID: "r1", Name: "Result"}}, nil
}

func (r *recordingSearcher) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recordingSearcher) lastCall() model.SearchParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func TestControllerZoomGate(t *testing.T) {
	rec := &recordingSearcher{}
	c := NewController(rec, Options{MinZoom: 14, Debounce: 10 * time.Millisecond}, discardLogger())
	defer c.Close()

	c.SetViewport(model.Coordinate{Lat: 40.7128, Lng: -74.0060}, 10)

	snap := c.Snapshot()
	assert.False(t, snap.ShouldShowResults)
	assert.Empty(t, snap.Restaurants)
	assert.False(t, snap.Loading)
	assert.Equal(t, StateIdle, c.State())

	// Long past the debounce window, still no search.
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.callCount())
}

func TestControllerDebounceCollapsesBurst(t *testing.T) {
	rec := &recordingSearcher{}
	c := NewController(rec, Options{MinZoom: 14, Debounce: 60 * time.Millisecond}, discardLogger())
	defer c.Close()

	first := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
	second := model.Coordinate{Lat: 40.7200, Lng: -74.0000}

	c.SetViewport(first, 15)
	assert.Equal(t, StateDebouncing, c.State())
	time.Sleep(20 * time.Millisecond)
	c.SetViewport(second, 15)

	require.Eventually(t, func() bool {
		return rec.callCount() == 1 && c.State() == StateIdle
	}, time.Second, 5*time.Millisecond)

	// Only the last center of the burst is searched.
	assert.Equal(t, second, rec.lastCall().Location)

	// And no second search fires afterwards.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, rec.callCount())
}

func TestControllerSearchParams(t *testing.T) {
	rec := &recordingSearcher{}
	c := NewController(rec, Options{
		MinZoom:   14,
		Debounce:  10 * time.Millisecond,
		RadiusM:   750,
		Category:  "cafe",
		MinRating: 4.0,
		MaxPrice:  3,
	}, discardLogger())
	defer c.Close()

	center := model.Coordinate{Lat: 48.8566, Lng: 2.3522}
	c.SetViewport(center, 16)

	require.Eventually(t, func() bool { return rec.callCount() == 1 }, time.Second, 5*time.Millisecond)

	params := rec.lastCall()
	assert.Equal(t, center, params.Location)
	assert.Equal(t, 750, params.RadiusM)
	assert.Equal(t, "cafe", params.Category)
	assert.InDelta(t, 4.0, params.MinRating, 1e-9)
	assert.Equal(t, 3, params.MaxPrice)
}

func TestControllerDiscardsStaleResponse(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var call atomic.Int32

	searcher := searchFunc(func(_ context.Context, _ model.SearchParams) ([]model.Restaurant, error) {
		if call.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return []model.Restaurant{{ID: "stale"}}, nil
		}
		return []model.Restaurant{{ID: "fresh"}}, nil
	})

	c := NewController(searcher, Options{MinZoom: 14, Debounce: 5 * time.Millisecond}, discardLogger())
	defer c.Close()

	c.SetViewport(model.Coordinate{Lat: 40.7128, Lng: -74.0060}, 15)
	<-firstStarted

	// A second viewport change supersedes the in-flight search.
	c.SetViewport(model.Coordinate{Lat: 40.7300, Lng: -74.0100}, 15)
	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Restaurants) == 1 && snap.Restaurants[0].ID == "fresh"
	}, time.Second, 5*time.Millisecond)

	// The slow first response arrives late and must not win.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)

	snap := c.Snapshot()
	require.Len(t, snap.Restaurants, 1)
	assert.Equal(t, "fresh", snap.Restaurants[0].ID)
	assert.False(t, snap.Loading)
}

func TestControllerZoomOutClearsResults(t *testing.T) {
	rec := &recordingSearcher{}
	c := NewController(rec, Options{MinZoom: 14, Debounce: 5 * time.Millisecond}, discardLogger())
	defer c.Close()

	center := model.Coordinate{Lat: 40.7128, Lng: -74.0060}
	c.SetViewport(center, 15)
	require.Eventually(t, func() bool {
		return len(c.Snapshot().Restaurants) == 1
	}, time.Second, 5*time.Millisecond)

	c.SetViewport(center, 12)
	snap := c.Snapshot()
	assert.Empty(t, snap.Restaurants)
	assert.False(t, snap.ShouldShowResults)
}

func TestControllerUpdatesStream(t *testing.T) {
	rec := &recordingSearcher{}
	c := NewController(rec, Options{MinZoom: 14, Debounce: 5 * time.Millisecond}, discardLogger())

	c.SetViewport(model.Coordinate{Lat: 40.7128, Lng: -74.0060}, 15)

	// Drain until the completed snapshot arrives.
	deadline := time.After(time.Second)
	for {
		select {
		case snap, ok := <-c.Updates():
			require.True(t, ok)
			if !snap.Loading && len(snap.Restaurants) == 1 {
				c.Close()
				return
			}
		case <-deadline:
			t.Fatal("no completed snapshot on updates stream")
		}
	}
}
