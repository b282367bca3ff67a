package record

import (
	"sort"

	"tsplit/internal/domain"
)

// SlowestEntry is one row of a slowest-items report.
type SlowestEntry struct {
	ID      string
	Seconds float64
}

// Slowest returns up to count entries from the duration history, slowest
// first. Entries with equal durations are ordered by ID so the report is
// stable between runs.
func Slowest(durations domain.Durations, count int) []SlowestEntry {
	entries := make([]SlowestEntry, 0, len(durations))
	for id, seconds := range durations {
		entries = append(entries, SlowestEntry{ID: id, Seconds: seconds})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].ID < entries[j].ID
	})

	if count > 0 && count < len(entries) {
		entries = entries[:count]
	}
	return entries
}
