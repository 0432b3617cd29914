package summary

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"growthos/internal/ledger"
	"growthos/internal/task"
)

// A day qualifies for the streak when at least this share of Daily tasks
// is completed. Fixed, not configurable per task.
const streakThreshold = 70.0

// Engine recomputes and persists one summary per date from the completion
// ledger. Recompute is idempotent: with an unchanged ledger it always
// produces the same record.
type Engine struct {
	tasks  task.Repo
	ledger ledger.Repo
	store  Store
	logger *log.Logger
}

func NewEngine(tasks task.Repo, records ledger.Repo, store Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{tasks: tasks, ledger: records, store: store, logger: logger}
}

// Recompute rebuilds the summary for the given date and persists it as a
// full replacement of any prior record for that date.
//
// Streak rules, applied in order:
//  1. no Daily tasks exist              -> streak 0
//  2. completion >= 70%                 -> yesterday's streak + 1
//  3. no summary for yesterday          -> prior streak counts as 0
//  4. completion < 70%                  -> streak 0
func (e *Engine) Recompute(date time.Time) (Summary, error) {
	dateKey := DateKey(date)

	all, err := e.tasks.ListAll()
	if err != nil {
		return Summary{}, fmt.Errorf("list tasks: %w", err)
	}
	daily := map[string]bool{}
	for _, t := range all {
		if t.Frequency == task.FrequencyDaily {
			daily[t.ID] = true
		}
	}

	// A day with no trackable Daily tasks never keeps a streak alive.
	if len(daily) == 0 {
		longest, err := e.resolveLongest(0)
		if err != nil {
			return Summary{}, err
		}
		return e.save(Summary{
			ID: dateKey, Date: dateKey,
			LongestStreak: longest,
		})
	}

	records, err := e.ledger.FindByDate(dateKey)
	if err != nil {
		return Summary{}, fmt.Errorf("ledger for %s: %w", dateKey, err)
	}
	completed := 0
	for _, rec := range records {
		if rec.Completed && daily[rec.TaskID] {
			completed++
		}
	}
	pct := round2(float64(completed) / float64(len(daily)) * 100.0)

	priorStreak := 0
	prev, err := e.store.FindByDate(DateKey(date.AddDate(0, 0, -1)))
	switch {
	case err == nil:
		priorStreak = prev.Streak
	case errors.Is(err, ErrNotFound):
		// No summary for yesterday: no implicit carry-forward across gaps.
	default:
		return Summary{}, err
	}

	streak := 0
	if pct >= streakThreshold {
		streak = priorStreak + 1
	}
	longest, err := e.resolveLongest(streak)
	if err != nil {
		return Summary{}, err
	}

	return e.save(Summary{
		ID:                   dateKey,
		Date:                 dateKey,
		TotalTasks:           len(daily),
		CompletedTasks:       completed,
		CompletionPercentage: pct,
		Streak:               streak,
		LongestStreak:        longest,
	})
}

// Get returns the persisted summary for the date, or a zero-valued one
// when none exists. It never errors on absence.
func (e *Engine) Get(date time.Time) (Summary, error) {
	dateKey := DateKey(date)
	sum, err := e.store.FindByDate(dateKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Summary{ID: dateKey, Date: dateKey}, nil
		}
		return Summary{}, err
	}
	return sum, nil
}

// MarkCompletion upserts the (task, date) ledger record and then
// recomputes the summary for that date. The recompute is mandatory: the
// two steps always happen together, in that order.
func (e *Engine) MarkCompletion(taskID string, date time.Time, completed bool) (ledger.Record, error) {
	if _, err := e.tasks.Get(taskID); err != nil {
		return ledger.Record{}, err
	}
	dateKey := ledger.DateKey(date)
	rec, err := e.ledger.Upsert(taskID, dateKey, completed)
	if err != nil {
		return ledger.Record{}, err
	}
	e.logger.Printf("marked task %s completed=%v on %s", taskID, completed, dateKey)

	if _, err := e.Recompute(date); err != nil {
		return ledger.Record{}, fmt.Errorf("recompute %s: %w", dateKey, err)
	}
	return rec, nil
}

// DayTask is a task joined with its completion flag for one date.
type DayTask struct {
	TaskID        string         `json:"taskId"`
	Title         string         `json:"title"`
	Category      string         `json:"category"`
	Frequency     task.Frequency `json:"frequency"`
	ScheduledDate string         `json:"scheduledDate,omitempty"`
	Completed     bool           `json:"completed"`
}

// TasksWithStatus lists the tasks trackable on the given date with their
// recorded completion state. Missing ledger records read as not completed.
func (e *Engine) TasksWithStatus(date time.Time) ([]DayTask, error) {
	dateKey := DateKey(date)

	all, err := e.tasks.ListAll()
	if err != nil {
		return nil, err
	}
	records, err := e.ledger.FindByDate(dateKey)
	if err != nil {
		return nil, err
	}
	done := map[string]bool{}
	for _, rec := range records {
		done[rec.TaskID] = rec.Completed
	}

	out := []DayTask{}
	for _, t := range all {
		if !t.AppliesOn(dateKey) {
			continue
		}
		out = append(out, DayTask{
			TaskID:        t.ID,
			Title:         t.Title,
			Category:      t.Category,
			Frequency:     t.Frequency,
			ScheduledDate: t.ScheduledDate,
			Completed:     done[t.ID],
		})
	}
	return out, nil
}

// resolveLongest keeps the recorded longest streak monotonic: it is the
// max of the candidate streak and every longestStreak ever persisted.
func (e *Engine) resolveLongest(streak int) (int, error) {
	all, err := e.store.FindAllDesc()
	if err != nil {
		return 0, err
	}
	longest := streak
	for _, sum := range all {
		if sum.LongestStreak > longest {
			longest = sum.LongestStreak
		}
	}
	return longest, nil
}

func (e *Engine) save(sum Summary) (Summary, error) {
	if err := e.store.Upsert(sum); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
