package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tastemap/internal/model"
)

// Locate failure taxonomy. These are the only errors surfaced to the user
// as text; a failed lookup never blocks searching against the viewport
// center.
const (
	LocatePermissionDenied    = "permission_denied"
	LocatePositionUnavailable = "position_unavailable"
	LocateTimeout             = "timeout"
	LocateUnknown             = "unknown"
)

// LocateError carries a taxonomy code plus a user-facing message.
type LocateError struct {
	Code    string
	Message string
	Err     error
}

func (e *LocateError) Error() string { return e.Message }
func (e *LocateError) Unwrap() error { return e.Err }

const (
	defaultLocateURL = "http://ip-api.com/json/"
	locateTimeout    = 10 * time.Second
	positionMaxAge   = 5 * time.Minute
)

type ipAPIResult struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locator resolves the machine's approximate position via the ip-api.com
// geolocation service. Successful lookups are cached for five minutes.
type Locator struct {
	http    *http.Client
	baseURL string
	cache   *gocache.Cache
	logger  *slog.Logger
}

func NewLocator(logger *slog.Logger) *Locator {
	return &Locator{
		http:    &http.Client{Timeout: locateTimeout},
		baseURL: defaultLocateURL,
		cache:   gocache.New(positionMaxAge, 10*time.Minute),
		logger:  logger,
	}
}

// SetBaseURL overrides the geolocation endpoint. Used by tests.
func (l *Locator) SetBaseURL(u string) { l.baseURL = u }

// CurrentPosition returns the machine's coordinates, or a *LocateError.
func (l *Locator) CurrentPosition(ctx context.Context) (model.Coordinate, error) {
	if cached, ok := l.cache.Get("position"); ok {
		return cached.(model.Coordinate), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return model.Coordinate{}, &LocateError{
			Code:    LocateUnknown,
			Message: "An unknown error occurred while getting location.",
			Err:     err,
		}
	}
	req.Header.Set("User-Agent", "tastemap/0.1 (location discovery)")

	resp, err := l.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return model.Coordinate{}, &LocateError{
				Code:    LocateTimeout,
				Message: "Location request timed out.",
				Err:     err,
			}
		}
		return model.Coordinate{}, &LocateError{
			Code:    LocatePositionUnavailable,
			Message: "Location information is unavailable.",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return model.Coordinate{}, &LocateError{
			Code:    LocatePermissionDenied,
			Message: "Location permission denied. Please enable location access.",
			Err:     fmt.Errorf("geolocation returned status %d", resp.StatusCode),
		}
	case resp.StatusCode != http.StatusOK:
		return model.Coordinate{}, &LocateError{
			Code:    LocateUnknown,
			Message: "An unknown error occurred while getting location.",
			Err:     fmt.Errorf("geolocation returned status %d", resp.StatusCode),
		}
	}

	var result ipAPIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Coordinate{}, &LocateError{
			Code:    LocateUnknown,
			Message: "An unknown error occurred while getting location.",
			Err:     fmt.Errorf("decoding geolocation response: %w", err),
		}
	}

	if result.Status != "success" {
		return model.Coordinate{}, &LocateError{
			Code:    LocatePositionUnavailable,
			Message: "Location information is unavailable.",
			Err:     fmt.Errorf("geolocation status %q: %s", result.Status, result.Message),
		}
	}

	pos := model.Coordinate{Lat: result.Lat, Lng: result.Lon}
	if !pos.Valid() {
		return model.Coordinate{}, &LocateError{
			Code:    LocatePositionUnavailable,
			Message: "Location information is unavailable.",
			Err:     ErrInvalidCoordinate,
		}
	}

	l.cache.Set("position", pos, gocache.DefaultExpiration)
	l.logger.Info("position resolved", "lat", pos.Lat, "lng", pos.Lng)
	return pos, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
