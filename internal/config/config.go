package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the app constructs its clients from. Values
// come from the environment (a .env file is honored if present); every
// knob has a default so the app runs keyless on mock data.
type Config struct {
	RapidAPIKey  string
	PlacesAPIKey string

	// Endpoint overrides, mainly for tests.
	TravelAdvisorURL string
	PlacesURL        string

	MinZoom   int
	Debounce  time.Duration
	RadiusM   int
	MinRating float64
	MaxPrice  int
}

func Load() Config {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load()

	return Config{
		RapidAPIKey:      os.Getenv("RAPIDAPI_KEY"),
		PlacesAPIKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		TravelAdvisorURL: os.Getenv("TASTEMAP_TRAVEL_ADVISOR_URL"),
		PlacesURL:        os.Getenv("TASTEMAP_PLACES_URL"),
		MinZoom:          envInt("TASTEMAP_MIN_ZOOM", 14),
		Debounce:         time.Duration(envInt("TASTEMAP_DEBOUNCE_MS", 300)) * time.Millisecond,
		RadiusM:          envInt("TASTEMAP_RADIUS_M", 1000),
		MinRating:        envFloat("TASTEMAP_MIN_RATING", 0),
		MaxPrice:         envInt("TASTEMAP_MAX_PRICE", 4),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
