// Package ledger stores one boolean completion flag per (task, date).
// Absence of a record means "not recorded"; callers treat that as not
// completed, but it is still distinct from an explicit false.
package ledger

import "time"

const dateLayout = "2006-01-02"

// Record is the per-(task, date) completion fact. The (TaskID, Date)
// pair is unique; upserts never duplicate it.
type Record struct {
	TaskID    string `json:"taskId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
}

// DateKey formats a time as the ledger's date key. Lexicographic order of
// keys matches chronological order.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func recordKey(taskID, date string) string {
	return taskID + "@" + date
}
