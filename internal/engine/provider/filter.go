package provider

import "strings"

// Venue keywords that mark a place as clearly not a restaurant. The
// providers already bias toward restaurants; this is a conservative
// second pass, so false negatives are acceptable.
var nonRestaurantKeywords = []string{
	"museum", "gallery", "theater", "cinema", "park", "garden",
	"monument", "statue", "tower", "bridge", "castle", "palace",
	"temple", "church", "mosque", "synagogue", "shrine",
	"attraction", "landmark", "viewpoint", "observation",
	"tour", "experience", "adventure", "entertainment", "amusement",
	"zoo", "aquarium",
	"hotel", "hostel", "resort", "spa", "gym", "fitness",
}

// IsRestaurant reports whether a place with the given category and name
// looks like a genuine restaurant. Matching is case-insensitive and
// deterministic for a fixed denylist.
func IsRestaurant(category, name string) bool {
	category = strings.ToLower(category)
	name = strings.ToLower(name)
	for _, kw := range nonRestaurantKeywords {
		if strings.Contains(category, kw) || strings.Contains(name, kw) {
			return false
		}
	}
	return true
}
