package suggest

import (
	"strings"
	"testing"
	"time"

	"growthos/internal/ledger"
	"growthos/internal/summary"
	"growthos/internal/task"
)

var today = time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

func newTestEngine() (*Engine, task.Repo, ledger.Repo, summary.Store) {
	tasks := task.NewMemoryRepo()
	records := ledger.NewMemoryRepo()
	store := summary.NewMemoryStore()
	return NewEngine(tasks, records, store), tasks, records, store
}

func addTask(t *testing.T, repo task.Repo, title, category string) task.Task {
	t.Helper()
	created, err := repo.Create(task.Task{
		Title: title, Category: category,
		Frequency: task.FrequencyDaily,
		Priority:  task.PriorityMedium,
		Status:    task.StatusPending,
	})
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	return created
}

func putStreak(t *testing.T, store summary.Store, date string, pct float64, streak int) {
	t.Helper()
	err := store.Upsert(summary.Summary{ID: date, Date: date, CompletionPercentage: pct, Streak: streak})
	if err != nil {
		t.Fatalf("upsert %s: %v", date, err)
	}
}

// fillWeek keeps the weekly average above the low-performance cutoff so
// later rules get a chance to fire.
func fillWeek(t *testing.T, store summary.Store, pct float64) {
	t.Helper()
	for i := 0; i < 7; i++ {
		date := summary.DateKey(today.AddDate(0, 0, -i))
		putStreak(t, store, date, pct, 0)
	}
}

func TestSuggest_NoTasksMeansOnboarding(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgOnboarding {
		t.Fatalf("expected onboarding message, got %q", msg)
	}
}

func TestSuggest_HealthRuleFiresAfterThreeMissedDays(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Morning Gym", "Fitness")
	// Even with a healthy average the missed-gym rule takes precedence.
	fillWeek(t, store, 90)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgHealth {
		t.Fatalf("expected health message, got %q", msg)
	}
}

func TestSuggest_HealthRuleSkippedWhenRecentlyCompleted(t *testing.T) {
	engine, tasks, records, store := newTestEngine()
	gym := addTask(t, tasks, "Morning Gym", "Fitness")
	fillWeek(t, store, 90)
	// Completed yesterday: the three-day miss is broken.
	_, _ = records.Upsert(gym.ID, "2026-01-19", true)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg == msgHealth {
		t.Fatalf("health rule must not fire after a recent completion")
	}
}

func TestSuggest_InterviewRuleWantsTwoSessions(t *testing.T) {
	engine, tasks, records, store := newTestEngine()
	prep := addTask(t, tasks, "Interview prep", "Career")
	fillWeek(t, store, 90)
	_, _ = records.Upsert(prep.ID, "2026-01-19", true)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgInterview {
		t.Fatalf("expected interview message with one session, got %q", msg)
	}

	_, _ = records.Upsert(prep.ID, "2026-01-18", true)
	msg, err = engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg == msgInterview {
		t.Fatalf("interview rule must not fire with two sessions")
	}
}

func TestSuggest_LowWeeklyAverage(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Read", "Learning")
	fillWeek(t, store, 40)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgLowWeek {
		t.Fatalf("expected low-week message, got %q", msg)
	}
}

func TestSuggest_BrokenStreak(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Read", "Learning")
	fillWeek(t, store, 80)
	putStreak(t, store, "2026-01-19", 80, 3)
	putStreak(t, store, "2026-01-20", 80, 0)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgBroken {
		t.Fatalf("expected broken-streak message, got %q", msg)
	}
}

func TestSuggest_MissingTodaySummaryIsNotBroken(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Read", "Learning")
	// Yesterday had a streak but today has no summary at all.
	for i := 1; i < 7; i++ {
		putStreak(t, store, summary.DateKey(today.AddDate(0, 0, -i)), 90, 3)
	}

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg == msgBroken {
		t.Fatalf("absent summary must not count as a broken streak")
	}
	if msg != msgFallback {
		t.Fatalf("expected fallback, got %q", msg)
	}
}

func TestSuggest_LongStreakPraise(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Read", "Learning")
	fillWeek(t, store, 80)
	putStreak(t, store, "2026-01-20", 80, 9)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !strings.Contains(msg, "9-day streak") {
		t.Fatalf("expected praise naming the 9-day streak, got %q", msg)
	}
}

func TestSuggest_Fallback(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Read", "Learning")
	fillWeek(t, store, 80)
	putStreak(t, store, "2026-01-20", 80, 2)

	msg, err := engine.Suggest(today)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if msg != msgFallback {
		t.Fatalf("expected fallback, got %q", msg)
	}
}
