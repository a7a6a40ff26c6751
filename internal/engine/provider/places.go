package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tastemap/internal/model"
)

// Places is the fallback provider (Google Places nearby search).
type Places struct {
	c *Client
}

func NewPlaces(c *Client) *Places {
	return &Places{c: c}
}

func (p *Places) Name() string { return "places" }

// Search returns the raw records for a nearby search. A 2xx response with
// status other than OK, or without a results array, is ErrNoData. An OK
// response with an empty results array is a genuine empty result.
func (p *Places) Search(ctx context.Context, params model.SearchParams) ([]RawRecord, error) {
	placeType := params.Category
	if placeType == "" {
		placeType = "restaurant"
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(params.Location.Lat, 'f', -1, 64),
		strconv.FormatFloat(params.Location.Lng, 'f', -1, 64)))
	q.Set("radius", strconv.Itoa(params.RadiusM))
	q.Set("type", placeType)
	q.Set("minprice", "0")
	q.Set("maxprice", strconv.Itoa(params.MaxPrice))
	q.Set("key", p.c.cfg.PlacesAPIKey)

	reqURL := p.c.cfg.PlacesURL + "/nearbysearch/json?" + q.Encode()

	body, err := p.c.getJSON(ctx, p.Name(), reqURL, nil)
	if err != nil {
		return nil, err
	}

	status, _ := body["status"].(string)
	if status != "OK" {
		return nil, fmt.Errorf("%s status %q: %w", p.Name(), status, ErrNoData)
	}

	records, ok := recordsFrom(body["results"])
	if !ok {
		return nil, fmt.Errorf("%s: %w", p.Name(), ErrNoData)
	}
	return records, nil
}
