package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"tastemap/internal/config"
	"tastemap/internal/engine/geo"
	"tastemap/internal/engine/provider"
	"tastemap/internal/engine/search"
	"tastemap/internal/model"
)

func runSearch(args []string) error {
	var (
		lat, lng       float64
		locate         bool
		radiusM        int
		minRating      float64
		maxPrice       int
		category       string
		format, output string
		verbose        bool
	)

	cfg := config.Load()

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fs.Float64Var(&lat, "lat", 0, "Search center latitude")
	fs.Float64Var(&lng, "lng", 0, "Search center longitude")
	fs.BoolVar(&locate, "locate", false, "Resolve the search center from this machine's location")
	fs.IntVar(&radiusM, "radius", cfg.RadiusM, "Search radius in meters")
	fs.Float64Var(&minRating, "min-rating", cfg.MinRating, "Minimum star rating filter")
	fs.IntVar(&maxPrice, "max-price", cfg.MaxPrice, "Maximum price level 1-4")
	fs.StringVar(&category, "category", "restaurant", "Place category (restaurant, cafe, bar, ...)")
	fs.StringVar(&format, "format", "table", "Output format: table, csv, json")
	fs.StringVar(&output, "output", "", "Output file path (default: stdout)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tastemap search [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tastemap search -lat 40.7128 -lng -74.0060\n")
		fmt.Fprintf(os.Stderr, "  tastemap search -locate -min-rating 4 -format csv -output nearby.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	origin := model.Coordinate{Lat: lat, Lng: lng}
	if locate {
		pos, err := geo.NewLocator(logger).CurrentPosition(ctx)
		if err != nil {
			return fmt.Errorf("locating: %w", err)
		}
		origin = pos
	}
	if !origin.Valid() || (origin.Lat == 0 && origin.Lng == 0 && !locate) {
		return fmt.Errorf("a valid -lat/-lng pair (or -locate) is required")
	}

	client := provider.NewClient(provider.Config{
		RapidAPIKey:      cfg.RapidAPIKey,
		PlacesAPIKey:     cfg.PlacesAPIKey,
		TravelAdvisorURL: cfg.TravelAdvisorURL,
		PlacesURL:        cfg.PlacesURL,
	}, logger)
	orch := search.NewOrchestrator(
		provider.NewTravelAdvisor(client),
		provider.NewPlaces(client),
		logger,
	)

	results, err := orch.Search(ctx, model.SearchParams{
		Location:  origin,
		RadiusM:   radiusM,
		Category:  category,
		MinRating: minRating,
		MaxPrice:  maxPrice,
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "table":
		return writeTable(out, results)
	case "csv":
		return writeCSV(out, results)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeTable(w io.Writer, results []model.Restaurant) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No restaurants found.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s %s  %.1f★ (%d)  %s  %s  %s\n",
			r.Image, r.Name, r.Rating, r.Reviews, r.Price, r.Category, r.Distance)
		fmt.Fprintf(w, "   %s\n", r.Address)
	}
	fmt.Fprintf(w, "\n%d restaurants\n", len(results))
	return nil
}

func writeCSV(w io.Writer, results []model.Restaurant) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{
		"id", "name", "rating", "reviews", "price", "category",
		"distance", "address", "phone", "website", "hours", "lat", "lng",
	})
	for _, r := range results {
		cw.Write([]string{
			r.ID,
			r.Name,
			fmt.Sprintf("%.1f", r.Rating),
			strconv.Itoa(r.Reviews),
			r.Price,
			r.Category,
			r.Distance,
			r.Address,
			r.Phone,
			r.Website,
			r.Hours,
			fmt.Sprintf("%.6f", r.Position.Lat),
			fmt.Sprintf("%.6f", r.Position.Lng),
		})
	}
	return cw.Error()
}
