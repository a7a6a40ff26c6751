package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tastemap/internal/model"
)

const travelAdvisorHost = "travel-advisor.p.rapidapi.com"

// TravelAdvisor is the primary restaurant-data provider (RapidAPI
// Travel Advisor, list-by-latlng endpoint).
type TravelAdvisor struct {
	c *Client
}

func NewTravelAdvisor(c *Client) *TravelAdvisor {
	return &TravelAdvisor{c: c}
}

func (p *TravelAdvisor) Name() string { return "travel-advisor" }

// Search returns the raw records for a nearby-restaurant query.
// A 2xx response whose "data" field is absent or not an array is ErrNoData.
func (p *TravelAdvisor) Search(ctx context.Context, params model.SearchParams) ([]RawRecord, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(params.Location.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(params.Location.Lng, 'f', -1, 64))
	q.Set("limit", "20")
	q.Set("currency", "USD")
	q.Set("distance", strconv.FormatFloat(float64(params.RadiusM)/1000.0, 'f', -1, 64))
	q.Set("open_now", "false")
	q.Set("lunit", "km")
	q.Set("lang", "en_US")
	q.Set("min_rating", "0")
	q.Set("max_rating", "5")

	reqURL := p.c.cfg.TravelAdvisorURL + "/restaurants/list-by-latlng?" + q.Encode()
	headers := map[string]string{
		"X-RapidAPI-Key":  p.c.cfg.RapidAPIKey,
		"X-RapidAPI-Host": travelAdvisorHost,
	}

	body, err := p.c.getJSON(ctx, p.Name(), reqURL, headers)
	if err != nil {
		return nil, err
	}

	records, ok := recordsFrom(body["data"])
	if !ok {
		return nil, fmt.Errorf("%s: %w", p.Name(), ErrNoData)
	}
	return records, nil
}
