package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoData marks a 2xx response whose body had no usable record array.
// The orchestrator treats it as terminal for the chain and falls back to
// mock data.
var ErrNoData = errors.New("provider returned no usable data")

// StatusError is a non-2xx provider response.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// RawRecord is one untyped provider record before normalization.
type RawRecord map[string]any

// Config holds provider endpoints and credentials. Everything is passed
// at construction; there is no ambient state.
type Config struct {
	RapidAPIKey      string
	PlacesAPIKey     string
	TravelAdvisorURL string
	PlacesURL        string
	Timeout          time.Duration
}

const (
	defaultTravelAdvisorURL = "https://travel-advisor.p.rapidapi.com"
	defaultPlacesURL        = "https://maps.googleapis.com/maps/api/place"
	defaultTimeout          = 15 * time.Second

	// Polite ceiling on outbound provider calls.
	requestsPerSecond = 5
)

// Client is the HTTP client shared by both providers.
type Client struct {
	http    *http.Client
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.TravelAdvisorURL == "" {
		cfg.TravelAdvisorURL = defaultTravelAdvisorURL
	}
	if cfg.PlacesURL == "" {
		cfg.PlacesURL = defaultPlacesURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		logger:  logger,
	}
}

// getJSON performs a rate-limited GET and decodes the body into a generic
// map. Non-2xx responses become *StatusError.
func (c *Client) getJSON(ctx context.Context, name, reqURL string, headers map[string]string) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Provider: name, StatusCode: resp.StatusCode}
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return body, nil
}

// recordsFrom converts a decoded JSON array into raw records, skipping
// non-object entries.
func recordsFrom(data any) ([]RawRecord, bool) {
	arr, ok := data.([]any)
	if !ok {
		return nil, false
	}
	records := make([]RawRecord, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		}
	}
	return records, true
}
