// Package summary owns the per-day summary records and the streak
// derivation that feeds them. No other package writes summaries.
package summary

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// Summary is one persisted record per calendar date. The date string is
// the record ID, so lookups are direct and key order is chronological.
type Summary struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	TotalTasks           int     `json:"totalTasks"`
	CompletedTasks       int     `json:"completedTasks"`
	CompletionPercentage float64 `json:"completionPercentage"`
	Streak               int     `json:"streak"`
	// LongestStreak is persisted per record and never decreases across
	// the full history of summaries.
	LongestStreak int `json:"longestStreak"`
}

var ErrNotFound = errors.New("summary not found")

// Store is the interface for summary persistence. Upsert replaces the
// whole record for its date; partial updates are not part of the contract.
type Store interface {
	FindByDate(dateKey string) (Summary, error)
	// FindInRange returns summaries with from <= date <= to, ascending.
	FindInRange(from, to string) ([]Summary, error)
	FindAllDesc() ([]Summary, error)
	Upsert(s Summary) error
}

// DateKey formats a time as a summary record key.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}
