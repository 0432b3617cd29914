package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	defaultHistoryPage = 0
	defaultHistorySize = 10
)

// HistoryFilter narrows the completed-task history. All fields are
// optional and AND-composed; zero values mean "no constraint".
type HistoryFilter struct {
	Category      string `json:"category"`
	StartDate     string `json:"startDate"` // YYYY-MM-DD, inclusive
	EndDate       string `json:"endDate"`   // YYYY-MM-DD, inclusive
	MinTimeSpent  *int   `json:"minTimeSpent"`
	MaxTimeSpent  *int   `json:"maxTimeSpent"`
	SearchKeyword string `json:"searchKeyword"`
	SortBy        string `json:"sortBy"` // "", "oldest", "time_desc", "priority"
	Priority      string `json:"priority"`

	Page int `json:"page"`
	Size int `json:"size"`
}

// History returns completed tasks matching the filter, sorted and paged.
func (s *Service) History(f HistoryFilter) ([]Task, error) {
	tasks, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return QueryHistory(tasks, f)
}

// QueryHistory filters, sorts, and pages completed tasks in memory.
func QueryHistory(tasks []Task, f HistoryFilter) ([]Task, error) {
	startDay, endDay, err := parseDateBounds(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}

	var prio Priority
	if strings.TrimSpace(f.Priority) != "" {
		prio, err = ParsePriority(f.Priority)
		if err != nil {
			return nil, err
		}
	}

	keyword := strings.ToLower(strings.TrimSpace(f.SearchKeyword))

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != StatusCompleted {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if startDay != "" || endDay != "" {
			if t.CompletedAt == nil {
				continue
			}
			// Bounds match the calendar day the completion happened on,
			// in the clock's own timezone. A task finished at 00:30
			// local time belongs to that local day even when its UTC
			// instant still falls on the previous one.
			day := t.CompletedAt.Format(dateLayout)
			if startDay != "" && day < startDay {
				continue
			}
			if endDay != "" && day > endDay {
				continue
			}
		}
		if f.MinTimeSpent != nil && t.TimeSpent < *f.MinTimeSpent {
			continue
		}
		if f.MaxTimeSpent != nil && t.TimeSpent > *f.MaxTimeSpent {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(t.Title), keyword) {
			continue
		}
		if prio != "" && t.Priority != prio {
			continue
		}
		out = append(out, t)
	}

	sortHistory(out, f.SortBy)
	return pageSlice(out, f.Page, f.Size), nil
}

// parseDateBounds validates inclusive YYYY-MM-DD bounds and returns
// them as date keys. Date keys compare lexicographically, so the filter
// never converts completion timestamps into a foreign timezone.
func parseDateBounds(start, end string) (string, string, error) {
	if start != "" {
		if _, err := time.Parse(dateLayout, start); err != nil {
			return "", "", fmt.Errorf("invalid startDate: %w", err)
		}
	}
	if end != "" {
		if _, err := time.Parse(dateLayout, end); err != nil {
			return "", "", fmt.Errorf("invalid endDate: %w", err)
		}
	}
	if start != "" && end != "" && start > end {
		return "", "", ErrInvalidRange
	}
	return start, end, nil
}

func sortHistory(tasks []Task, sortBy string) {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "oldest":
		sort.SliceStable(tasks, func(i, j int) bool {
			return completedBefore(tasks[i], tasks[j])
		})
	case "time_desc":
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].TimeSpent > tasks[j].TimeSpent
		})
	case "priority":
		// Weight table ordering, completedAt desc as tie-break.
		sort.SliceStable(tasks, func(i, j int) bool {
			wi, wj := tasks[i].Priority.Weight(), tasks[j].Priority.Weight()
			if wi != wj {
				return wi > wj
			}
			return completedBefore(tasks[j], tasks[i])
		})
	default:
		// Latest completed first.
		sort.SliceStable(tasks, func(i, j int) bool {
			return completedBefore(tasks[j], tasks[i])
		})
	}
}

func completedBefore(a, b Task) bool {
	switch {
	case a.CompletedAt == nil && b.CompletedAt == nil:
		return false
	case a.CompletedAt == nil:
		return true
	case b.CompletedAt == nil:
		return false
	default:
		return a.CompletedAt.Before(*b.CompletedAt)
	}
}

func pageSlice(tasks []Task, page, size int) []Task {
	if page < 0 {
		page = defaultHistoryPage
	}
	if size <= 0 {
		size = defaultHistorySize
	}
	start := page * size
	if start >= len(tasks) {
		return []Task{}
	}
	end := start + size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
