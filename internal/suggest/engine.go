// Package suggest evaluates an ordered rule chain over current task,
// ledger, and summary state and returns one coaching message. The first
// matching rule wins; no two rules fire together.
package suggest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"growthos/internal/ledger"
	"growthos/internal/summary"
	"growthos/internal/task"
)

const (
	msgOnboarding = "🚀 Start by adding your first task! Consistent tracking is the first step to growth."
	msgHealth     = "🏋️ Your health routine needs consistency. You've missed Gym/Health for 3 consecutive days — get back on track!"
	msgInterview  = "📋 Increase interview preparation to improve placement readiness. Aim for at least 3 sessions per week!"
	msgLowWeek    = "📉 Your performance is below your potential. Focus on completing at least 70% of your tasks daily to build momentum!"
	msgBroken     = "💫 Don't let one bad day stop your momentum. Your streak was broken, but you can start a new one today!"
	msgFallback   = "✅ You're making progress! Keep completing your tasks daily to build an unbreakable streak. You've got this!"
)

// streakUnknown marks "no summary recorded for today", which must not be
// confused with an explicit streak of 0 when detecting a broken streak.
const streakUnknown = -1

type Engine struct {
	tasks  task.Repo
	ledger ledger.Repo
	store  summary.Store
}

func NewEngine(tasks task.Repo, records ledger.Repo, store summary.Store) *Engine {
	return &Engine{tasks: tasks, ledger: records, store: store}
}

// Suggest runs the rule chain against already-persisted state. It reads
// only; nothing is recomputed or written.
func (e *Engine) Suggest(today time.Time) (string, error) {
	all, err := e.tasks.ListAll()
	if err != nil {
		return "", err
	}

	// Rule 1: nothing to track yet.
	if len(all) == 0 {
		return msgOnboarding, nil
	}

	fromKey := ledger.DateKey(today.AddDate(0, 0, -6))
	toKey := ledger.DateKey(today)
	weekRecords, err := e.ledger.FindInRange(fromKey, toKey)
	if err != nil {
		return "", err
	}

	// Rule 2: a gym/health task untouched on each of the last 3 days.
	if t, ok := firstMatching(all, "gym", "health"); ok {
		if missedConsecutiveDays(t.ID, weekRecords, today, 3) {
			return msgHealth, nil
		}
	}

	// Rule 3: interview practice under 2 completions this week.
	if t, ok := firstMatching(all, "interview", "interview"); ok {
		completions := 0
		for _, rec := range weekRecords {
			if rec.TaskID == t.ID && rec.Completed {
				completions++
			}
		}
		if completions < 2 {
			return msgInterview, nil
		}
	}

	// Rule 4: weekly average below 50%.
	avg, err := e.weeklyAverage(today)
	if err != nil {
		return "", err
	}
	if avg < 50.0 {
		return msgLowWeek, nil
	}

	todayStreak, err := e.streakOn(today, streakUnknown)
	if err != nil {
		return "", err
	}
	yesterdayStreak, err := e.streakOn(today.AddDate(0, 0, -1), 0)
	if err != nil {
		return "", err
	}

	// Rule 5: a recorded regression, not merely a sustained zero.
	if todayStreak == 0 && yesterdayStreak > 0 {
		return msgBroken, nil
	}

	// Rule 6: a week or more of momentum deserves praise.
	if todayStreak >= 7 {
		return fmt.Sprintf("🔥 Incredible! You've maintained a %d-day streak! Keep pushing — consistency is your superpower!", todayStreak), nil
	}

	return msgFallback, nil
}

// firstMatching returns the first task whose title contains titleNeedle or
// whose category contains categoryNeedle, case-insensitively.
func firstMatching(tasks []task.Task, titleNeedle, categoryNeedle string) (task.Task, bool) {
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), titleNeedle) ||
			strings.Contains(strings.ToLower(t.Category), categoryNeedle) {
			return t, true
		}
	}
	return task.Task{}, false
}

// missedConsecutiveDays reports whether the task has no completed record on
// each of the `days` days strictly before upTo.
func missedConsecutiveDays(taskID string, records []ledger.Record, upTo time.Time, days int) bool {
	completed := map[string]bool{}
	for _, rec := range records {
		if rec.TaskID == taskID && rec.Completed {
			completed[rec.Date] = true
		}
	}
	for i := 1; i <= days; i++ {
		if completed[ledger.DateKey(upTo.AddDate(0, 0, -i))] {
			return false
		}
	}
	return true
}

// weeklyAverage recomputes the zero-filled 7-day mean from the summary
// store, independently of the analytics engine.
func (e *Engine) weeklyAverage(today time.Time) (float64, error) {
	fromKey := summary.DateKey(today.AddDate(0, 0, -6))
	toKey := summary.DateKey(today)
	sums, err := e.store.FindInRange(fromKey, toKey)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, s := range sums {
		total += s.CompletionPercentage
	}
	return total / 7, nil
}

func (e *Engine) streakOn(date time.Time, absent int) (int, error) {
	sum, err := e.store.FindByDate(summary.DateKey(date))
	if err != nil {
		if errors.Is(err, summary.ErrNotFound) {
			return absent, nil
		}
		return 0, err
	}
	return sum.Streak, nil
}
