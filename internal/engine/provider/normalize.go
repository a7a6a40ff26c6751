package provider

import (
	"fmt"
	"strconv"
	"strings"

	"tastemap/internal/engine/geo"
	"tastemap/internal/model"
)

// Field defaults for the canonical record.
const (
	defaultName     = "Restaurant"
	defaultPrice    = model.PriceModerate
	defaultCategory = "Restaurant"
	defaultAddress  = "Address not available"
	defaultPhone    = "Phone not available"
	defaultWebsite  = "Website not available"
	defaultHours    = "Hours not available"
)

// Single-emoji image placeholders, picked by record index when the
// provider has no photo.
var placeholderImages = []string{"🍕", "🍔", "🍜", "🍣", "🍖", "🥗", "🍝", "🌮", "🍤", "🥘"}

// Generic description rotation used when the provider has no text.
var genericDescriptions = []string{
	"Delicious food and great atmosphere",
	"Popular local favorite",
	"Fresh ingredients and friendly service",
	"Cozy dining experience",
	"Authentic flavors and warm hospitality",
}

// Category labels for Places type tags.
var placeTypeCategories = map[string]string{
	"restaurant":    "Restaurant",
	"cafe":          "Cafe",
	"bar":           "Bar",
	"bakery":        "Bakery",
	"food":          "Food",
	"meal_takeaway": "Takeaway",
	"meal_delivery": "Delivery",
}

// Normalize maps one raw provider record into a Restaurant. Every field
// is probed under its primary key and the alternate spellings seen across
// provider versions, then defaulted. Records with missing or out-of-range
// coordinates are dropped (ok=false).
func Normalize(rec RawRecord, origin model.Coordinate, index int) (model.Restaurant, bool) {
	lat, latOK := floatAt(rec, "latitude", "lat", "geometry.location.lat")
	lng, lngOK := floatAt(rec, "longitude", "lng", "geometry.location.lng")
	if !latOK || !lngOK {
		return model.Restaurant{}, false
	}
	pos := model.Coordinate{Lat: lat, Lng: lng}
	if !pos.Valid() {
		return model.Restaurant{}, false
	}

	r := model.Restaurant{
		ID:          stringAt(rec, "location_id", "locationId", "place_id", "id"),
		Name:        stringAt(rec, "name"),
		Category:    categoryOf(rec),
		Image:       stringAt(rec, "photo.images.medium.url", "photo.images.small.url", "photo.images.large.url", "image"),
		Description: stringAt(rec, "description", "shortDescription", "short_description"),
		Position:    pos,
		Address:     stringAt(rec, "address_string", "addressString", "address", "vicinity"),
		Phone:       stringAt(rec, "phone", "phoneNumber", "formatted_phone_number"),
		Website:     stringAt(rec, "website", "url"),
		Hours:       hoursOf(rec),
		Price:       NormalizePrice(at(rec, "price_level", "priceLevel", "price")),
	}

	if rating, ok := floatAt(rec, "rating"); ok {
		r.Rating = rating
	}
	if reviews, ok := floatAt(rec, "num_reviews", "numReviews", "user_ratings_total", "review_count"); ok {
		r.Reviews = int(reviews)
	}

	if r.ID == "" {
		r.ID = fmt.Sprintf("restaurant-%d", index)
	}
	if r.Name == "" {
		r.Name = defaultName
	}
	if r.Category == "" {
		r.Category = defaultCategory
	}
	if r.Image == "" {
		r.Image = placeholderImages[index%len(placeholderImages)]
	}
	if r.Description == "" {
		r.Description = genericDescriptions[index%len(genericDescriptions)]
	}
	if r.Address == "" {
		r.Address = defaultAddress
	}
	if r.Phone == "" {
		r.Phone = defaultPhone
	}
	if r.Website == "" {
		r.Website = defaultWebsite
	}
	if r.Hours == "" {
		r.Hours = defaultHours
	}

	// Origin is the search center, validated upstream.
	r.Distance, _ = geo.Distance(origin, pos)

	return r, true
}

// FilterFields extracts the category and name strings the restaurant
// filter inspects, before any normalization.
func FilterFields(rec RawRecord) (category, name string) {
	category = stringAt(rec, "category.name", "category", "cuisine.0.name", "types.0")
	name = stringAt(rec, "name")
	return category, name
}

func categoryOf(rec RawRecord) string {
	// Places responses carry a list of type tags.
	if types, ok := at(rec, "types").([]any); ok {
		for _, t := range types {
			if s, ok := t.(string); ok {
				if label, ok := placeTypeCategories[s]; ok {
					return label
				}
			}
		}
		return defaultCategory
	}
	return stringAt(rec, "cuisine.0.name", "category.name", "category")
}

func hoursOf(rec RawRecord) string {
	if s := stringAt(rec, "open_now_text", "openNowText", "hours"); s != "" {
		return s
	}
	if open, ok := at(rec, "opening_hours.open_now").(bool); ok {
		if open {
			return "Open now"
		}
		return "Closed"
	}
	return ""
}

// NormalizePrice maps a provider price value onto the $..$$$$ tiers.
// Accepts a numeric level 1-4 or a descriptive string (dollar-sign runs or
// the inexpensive/moderate/expensive/very expensive wording).
func NormalizePrice(v any) string {
	switch p := v.(type) {
	case float64:
		return priceFromLevel(int(p))
	case int:
		return priceFromLevel(p)
	case string:
		return priceFromString(p)
	}
	return defaultPrice
}

func priceFromLevel(level int) string {
	switch level {
	case 1:
		return model.PriceCheap
	case 2:
		return model.PriceModerate
	case 3:
		return model.PriceExpensive
	case 4:
		return model.PriceLuxury
	}
	return defaultPrice
}

func priceFromString(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultPrice
	}
	// Dollar runs first, longest wins ("$$ - $$$" reads as $$$).
	switch {
	case strings.Contains(s, "$$$$"):
		return model.PriceLuxury
	case strings.Contains(s, "$$$"):
		return model.PriceExpensive
	case strings.Contains(s, "$$"):
		return model.PriceModerate
	case strings.Contains(s, "$"):
		return model.PriceCheap
	}
	// Keyword order matters: "inexpensive" contains "expensive".
	switch {
	case strings.Contains(s, "very expensive"):
		return model.PriceLuxury
	case strings.Contains(s, "inexpensive"):
		return model.PriceCheap
	case strings.Contains(s, "expensive"):
		return model.PriceExpensive
	case strings.Contains(s, "moderate"):
		return model.PriceModerate
	}
	return defaultPrice
}

// at probes a record for the first present value among dot-separated key
// paths. Numeric path segments index into arrays.
func at(rec RawRecord, paths ...string) any {
	for _, path := range paths {
		current := any(map[string]any(rec))
		found := true
		for _, seg := range strings.Split(path, ".") {
			switch node := current.(type) {
			case map[string]any:
				v, ok := node[seg]
				if !ok {
					found = false
				}
				current = v
			case []any:
				idx, err := strconv.Atoi(seg)
				if err != nil || idx < 0 || idx >= len(node) {
					found = false
				} else {
					current = node[idx]
				}
			default:
				found = false
			}
			if !found {
				break
			}
		}
		if found && current != nil {
			return current
		}
	}
	return nil
}

// stringAt extracts a string from the first present path. Numbers are
// rendered, anything else is skipped.
func stringAt(rec RawRecord, paths ...string) string {
	for _, path := range paths {
		switch v := at(rec, path).(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// floatAt extracts a float from the first present path. Handles float64
// and numeric strings, as providers disagree on types.
func floatAt(rec RawRecord, paths ...string) (float64, bool) {
	for _, path := range paths {
		switch v := at(rec, path).(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
