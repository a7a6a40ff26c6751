package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tastemap/internal/model"
)

// Controller states.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateSearching
)

// Searcher is what the controller drives; satisfied by *Orchestrator.
type Searcher interface {
	Search(ctx context.Context, params model.SearchParams) ([]model.Restaurant, error)
}

// Options configures a viewport controller. Zero values take the
// defaults below.
type Options struct {
	MinZoom   int
	Debounce  time.Duration
	RadiusM   int
	Category  string
	MinRating float64
	MaxPrice  int
}

const (
	DefaultMinZoom  = 14
	DefaultDebounce = 300 * time.Millisecond
	DefaultRadiusM  = 1000
	DefaultMaxPrice = 4
)

// Snapshot is the controller's externally visible state at one instant.
type Snapshot struct {
	Restaurants       []model.Restaurant
	Loading           bool
	Err               string
	Center            model.Coordinate
	HasCenter         bool
	Zoom              int
	ShouldShowResults bool
}

// Controller reacts to viewport changes: it gates on a minimum zoom,
// debounces bursts of pan/zoom events (trailing edge), and runs one
// search per quiet period. Each search carries a monotonically increasing
// id; a completion is applied only while its id is still the latest
// issued, so a slow stale response can never overwrite a newer result.
type Controller struct {
	searcher Searcher
	opts     Options
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	timer     *time.Timer
	viewport  model.Viewport
	hasCenter bool
	results   []model.Restaurant
	loading   bool
	lastErr   string
	seq       uint64

	updates chan Snapshot
	closed  bool
}

func NewController(searcher Searcher, opts Options, logger *slog.Logger) *Controller {
	if opts.MinZoom == 0 {
		opts.MinZoom = DefaultMinZoom
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RadiusM == 0 {
		opts.RadiusM = DefaultRadiusM
	}
	if opts.MaxPrice == 0 {
		opts.MaxPrice = DefaultMaxPrice
	}
	return &Controller{
		searcher: searcher,
		opts:     opts,
		logger:   logger,
		updates:  make(chan Snapshot, 16),
	}
}

// Updates delivers a snapshot after every state change. Slow consumers
// miss intermediate snapshots, never the data itself (Snapshot() always
// has the latest).
func (c *Controller) Updates() <-chan Snapshot { return c.updates }

// SetViewport feeds a viewport-change notification into the controller.
func (c *Controller) SetViewport(center model.Coordinate, zoom int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viewport = model.Viewport{Center: center, Zoom: zoom}
	c.hasCenter = true

	if zoom < c.opts.MinZoom {
		// Below the gate: cancel any pending work, clear results.
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.seq++ // invalidates any in-flight search
		c.state = StateIdle
		c.results = nil
		c.loading = false
		c.notifyLocked()
		return
	}

	c.state = StateDebouncing
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.Debounce, c.fire)
	c.notifyLocked()
}

// fire runs when the debounce window elapses with no further changes.
func (c *Controller) fire() {
	c.mu.Lock()
	if c.state != StateDebouncing {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.seq++
	id := c.seq
	params := model.SearchParams{
		Location:  c.viewport.Center,
		RadiusM:   c.opts.RadiusM,
		Category:  c.opts.Category,
		MinRating: c.opts.MinRating,
		MaxPrice:  c.opts.MaxPrice,
	}
	c.state = StateSearching
	c.loading = true
	c.lastErr = ""
	c.notifyLocked()
	c.mu.Unlock()

	go func() {
		results, err := c.searcher.Search(context.Background(), params)

		c.mu.Lock()
		defer c.mu.Unlock()
		if id != c.seq {
			// A newer search was issued while this one was in flight.
			c.logger.Debug("discarding superseded search result", "id", id, "latest", c.seq)
			return
		}
		if err != nil {
			c.lastErr = err.Error()
		} else {
			c.results = results
		}
		c.loading = false
		c.state = StateIdle
		c.notifyLocked()
	}()
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current externally visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops any pending debounce timer and the update stream. In-flight
// searches complete and are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.state = StateIdle
	close(c.updates)
}

func (c *Controller) snapshotLocked() Snapshot {
	results := make([]model.Restaurant, len(c.results))
	copy(results, c.results)
	return Snapshot{
		Restaurants:       results,
		Loading:           c.loading,
		Err:               c.lastErr,
		Center:            c.viewport.Center,
		HasCenter:         c.hasCenter,
		Zoom:              c.viewport.Zoom,
		ShouldShowResults: c.viewport.Zoom >= c.opts.MinZoom,
	}
}

func (c *Controller) notifyLocked() {
	if c.closed {
		return
	}
	select {
	case c.updates <- c.snapshotLocked():
	default:
	}
}
