// Package analytics derives read-only 7-day rollups from the task, ledger,
// and summary stores. It never mutates state.
package analytics

import (
	"math"
	"time"

	"growthos/internal/ledger"
	"growthos/internal/summary"
	"growthos/internal/task"
)

// Sentinel reported for strongest/weakest when no tasks exist.
const notApplicable = "N/A"

type DailyProgress struct {
	Date                 string  `json:"date"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

type Report struct {
	WeeklyAverage float64         `json:"weeklyAverage"`
	CurrentStreak int             `json:"currentStreak"`
	LongestStreak int             `json:"longestStreak"`
	WeakestTask   string          `json:"weakestTask"`
	StrongestTask string          `json:"strongestTask"`
	DailyProgress []DailyProgress `json:"dailyProgress"`
}

type Engine struct {
	tasks  task.Repo
	ledger ledger.Repo
	store  summary.Store
}

func NewEngine(tasks task.Repo, records ledger.Repo, store summary.Store) *Engine {
	return &Engine{tasks: tasks, ledger: records, store: store}
}

// Weekly aggregates the window [today-6, today]. Days without a summary
// contribute 0 to the series and the average. Unlike the streak engine,
// Weekly-frequency tasks do count toward strongest/weakest here.
func (e *Engine) Weekly(today time.Time) (Report, error) {
	fromKey := summary.DateKey(today.AddDate(0, 0, -6))
	toKey := summary.DateKey(today)

	sums, err := e.store.FindInRange(fromKey, toKey)
	if err != nil {
		return Report{}, err
	}
	byDate := map[string]summary.Summary{}
	for _, s := range sums {
		byDate[s.Date] = s
	}

	progress := make([]DailyProgress, 0, 7)
	total := 0.0
	for i := 6; i >= 0; i-- {
		day := summary.DateKey(today.AddDate(0, 0, -i))
		pct := byDate[day].CompletionPercentage
		progress = append(progress, DailyProgress{Date: day, CompletionPercentage: pct})
		total += pct
	}

	// Current streak comes strictly from today's summary; no fallback.
	currentStreak := byDate[toKey].Streak

	longest, err := e.longestStreak()
	if err != nil {
		return Report{}, err
	}

	strongest, weakest, err := e.extremes(fromKey, toKey)
	if err != nil {
		return Report{}, err
	}

	return Report{
		WeeklyAverage: round2(total / 7),
		CurrentStreak: currentStreak,
		LongestStreak: longest,
		WeakestTask:   weakest,
		StrongestTask: strongest,
		DailyProgress: progress,
	}, nil
}

// Categories counts completed records per task category over the 7-day
// window ending today. Records whose task no longer exists are skipped.
func (e *Engine) Categories(today time.Time) (map[string]int, error) {
	fromKey := ledger.DateKey(today.AddDate(0, 0, -6))
	toKey := ledger.DateKey(today)

	all, err := e.tasks.ListAll()
	if err != nil {
		return nil, err
	}
	categories := map[string]string{}
	for _, t := range all {
		categories[t.ID] = t.Category
	}

	records, err := e.ledger.FindInRange(fromKey, toKey)
	if err != nil {
		return nil, err
	}

	out := map[string]int{}
	for _, rec := range records {
		if !rec.Completed {
			continue
		}
		cat, ok := categories[rec.TaskID]
		if !ok {
			continue
		}
		out[cat]++
	}
	return out, nil
}

// extremes finds the tasks with the most and fewest completions in the
// window. Ties go to the first task encountered; a task with zero
// completions can be the weakest.
func (e *Engine) extremes(fromKey, toKey string) (strongest, weakest string, err error) {
	all, err := e.tasks.ListAll()
	if err != nil {
		return "", "", err
	}
	if len(all) == 0 {
		return notApplicable, notApplicable, nil
	}

	records, err := e.ledger.FindInRange(fromKey, toKey)
	if err != nil {
		return "", "", err
	}
	counts := map[string]int{}
	for _, rec := range records {
		if rec.Completed {
			counts[rec.TaskID]++
		}
	}

	maxCount, minCount := -1, -1
	for _, t := range all {
		c := counts[t.ID]
		if c > maxCount {
			maxCount = c
			strongest = t.Title
		}
		if minCount == -1 || c < minCount {
			minCount = c
			weakest = t.Title
		}
	}
	return strongest, weakest, nil
}

func (e *Engine) longestStreak() (int, error) {
	all, err := e.store.FindAllDesc()
	if err != nil {
		return 0, err
	}
	longest := 0
	for _, s := range all {
		if s.LongestStreak > longest {
			longest = s.LongestStreak
		}
	}
	return longest, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
