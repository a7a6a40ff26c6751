package search

import (
	"context"
	"errors"
	"log/slog"

	"tastemap/internal/engine/provider"
	"tastemap/internal/model"
)

// Provider is one external restaurant-data source.
type Provider interface {
	Name() string
	Search(ctx context.Context, params model.SearchParams) ([]provider.RawRecord, error)
}

// Orchestrator runs the provider chain for one search: primary provider,
// then fallback provider, then synthetic data. Provider errors are
// absorbed here; callers only ever see a result list.
type Orchestrator struct {
	primary  Provider
	fallback Provider
	logger   *slog.Logger
}

func NewOrchestrator(primary, fallback Provider, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{primary: primary, fallback: fallback, logger: logger}
}

// Search returns the restaurants near params.Location. The error return
// is always nil; it exists so fakes can exercise caller error paths.
func (o *Orchestrator) Search(ctx context.Context, params model.SearchParams) ([]model.Restaurant, error) {
	records, err := o.primary.Search(ctx, params)
	if err != nil {
		if errors.Is(err, provider.ErrNoData) {
			o.logger.Warn("primary provider returned no data, using mock results",
				"provider", o.primary.Name(), "error", err)
			return provider.MockRestaurants(params.Location), nil
		}
		o.logger.Warn("primary provider failed, trying fallback",
			"provider", o.primary.Name(), "error", err)

		records, err = o.fallback.Search(ctx, params)
		if err != nil {
			o.logger.Warn("fallback provider failed, using mock results",
				"provider", o.fallback.Name(), "error", err)
			return provider.MockRestaurants(params.Location), nil
		}
	}

	// An empty provider result is a genuine empty result, not a reason
	// to fall back to mock data.
	results := make([]model.Restaurant, 0, len(records))
	for i, rec := range records {
		category, name := provider.FilterFields(rec)
		if !provider.IsRestaurant(category, name) {
			continue
		}
		r, ok := provider.Normalize(rec, params.Location, i)
		if !ok {
			o.logger.Debug("dropping record with invalid coordinates",
				"name", name, "index", i)
			continue
		}
		if r.Rating < params.MinRating {
			continue
		}
		results = append(results, r)
	}

	o.logger.Info("search complete",
		"lat", params.Location.Lat, "lng", params.Location.Lng,
		"received", len(records), "kept", len(results))
	return results, nil
}
