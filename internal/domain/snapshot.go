package domain

import (
	"sort"
	"time"
)

// Snapshot represents a point-in-time record of the headline metrics.
// Snapshots are immutable once saved; they can only be deleted.
type Snapshot struct {
	ID          ID        `json:"id"`
	Date        time.Time `json:"date"`
	OverallNet  Amount    `json:"overallNet"`
	TotalAssets Amount    `json:"totalAssets"`
	TotalDebt   Amount    `json:"totalDebt"`
	Currency    Currency  `json:"currency"` // label only, amounts are never converted
}

// SortedByDate returns a copy of history ordered by date ascending.
// Storage order is newest-first and must never be relied on by consumers.
func SortedByDate(history []Snapshot) []Snapshot {
	sorted := make([]Snapshot, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
