package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const maxRecent = 10

// RecentEntry is one previously explored search origin. Only origins are
// recorded, never results.
type RecentEntry struct {
	Label    string    `json:"label"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Category string    `json:"category"`
	OpenedAt time.Time `json:"opened_at"`
}

func recentFilePath() string {
	cfg, _ := os.UserConfigDir()
	return filepath.Join(cfg, "tastemap", "recent.json")
}

func LoadRecent() []RecentEntry {
	data, err := os.ReadFile(recentFilePath())
	if err != nil {
		return nil
	}
	var entries []RecentEntry
	json.Unmarshal(data, &entries)
	return entries
}

func SaveRecent(entry RecentEntry) {
	entry.OpenedAt = time.Now()

	entries := LoadRecent()

	// Remove duplicate origins
	filtered := make([]RecentEntry, 0, len(entries))
	for _, e := range entries {
		if e.Lat != entry.Lat || e.Lng != entry.Lng || e.Category != entry.Category {
			filtered = append(filtered, e)
		}
	}

	// Prepend
	filtered = append([]RecentEntry{entry}, filtered...)
	if len(filtered) > maxRecent {
		filtered = filtered[:maxRecent]
	}

	data, _ := json.MarshalIndent(filtered, "", "  ")
	dir := filepath.Dir(recentFilePath())
	os.MkdirAll(dir, 0755)
	os.WriteFile(recentFilePath(), data, 0644)
}
