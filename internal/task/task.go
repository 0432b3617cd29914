package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyOneTime Frequency = "OneTime"
)

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	case "onetime", "one-time":
		return FrequencyOneTime, nil
	default:
		return "", fmt.Errorf("unknown frequency: %q", s)
	}
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// priorityWeights is the single source of truth for priority ordering.
// Sorting must go through Weight, never through the label text.
var priorityWeights = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

func (p Priority) Weight() int {
	return priorityWeights[p]
}

func (p Priority) Valid() bool {
	_, ok := priorityWeights[p]
	return ok
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority: %q", s)
	}
	return p, nil
}

type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Category       string     `json:"category"`
	Frequency      Frequency  `json:"frequency"`
	ScheduledDate  string     `json:"scheduledDate,omitempty"` // YYYY-MM-DD, OneTime tasks only
	Priority       Priority   `json:"priority"`
	Status         Status     `json:"status"`
	CompletionNote string     `json:"completionNote,omitempty"`
	TimeSpent      int        `json:"timeSpent,omitempty"` // minutes
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	switch t.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyOneTime:
	default:
		return fmt.Errorf("unknown frequency: %q", t.Frequency)
	}
	if t.Frequency == FrequencyOneTime {
		if t.ScheduledDate == "" {
			return errors.New("scheduledDate is required for OneTime tasks")
		}
		if _, err := time.Parse(dateLayout, t.ScheduledDate); err != nil {
			return fmt.Errorf("invalid scheduledDate: %w", err)
		}
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("unknown priority: %q", t.Priority)
	}
	return nil
}

// AppliesOn reports whether the task is trackable on the given day.
// Daily and Weekly tasks appear every day; OneTime tasks only on their
// scheduled date.
func (t Task) AppliesOn(date string) bool {
	if t.Frequency != FrequencyOneTime {
		return true
	}
	return t.ScheduledDate == date
}
