package analytics

import (
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

func putSummary(t *testing.T, store summary.Store, date string, pct float64, streak, longest int) {
	t.Helper()
	err := store.Upsert(summary.Summary{
		ID: date, Date: date,
		CompletionPercentage: pct,
		Streak:               streak,
		LongestStreak:        longest,
	})
	if err != nil {
		t.Fatalf("upsert summary %s: %v", date, err)
	}
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

func TestWeekly_ZeroFillsMissingDays(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Gym", "Health")

	putSummary(t, store, "2026-01-20", 80, 2, 5)
	putSummary(t, store, "2026-01-18", 60, 0, 5)

	report, err := engine.Weekly(today)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(report.DailyProgress) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(report.DailyProgress))
	}
	if report.DailyProgress[0].Date != "2026-01-14" || report.DailyProgress[6].Date != "2026-01-20" {
		t.Fatalf("expected chronological window, got %s .. %s",
			report.DailyProgress[0].Date, report.DailyProgress[6].Date)
	}
	for _, dp := range report.DailyProgress {
		switch dp.Date {
		case "2026-01-20":
			if dp.CompletionPercentage != 80 {
				t.Fatalf("expected 80 on the 20th, got %v", dp.CompletionPercentage)
			}
		case "2026-01-18":
			if dp.CompletionPercentage != 60 {
				t.Fatalf("expected 60 on the 18th, got %v", dp.CompletionPercentage)
			}
		default:
			if dp.CompletionPercentage != 0 {
				t.Fatalf("expected zero-filled day %s, got %v", dp.Date, dp.CompletionPercentage)
			}
		}
	}
	// (80 + 60) / 7, days without summaries count as zero.
	if report.WeeklyAverage != 20 {
		t.Fatalf("expected weekly average 20, got %v", report.WeeklyAverage)
	}
	if report.CurrentStreak != 2 || report.LongestStreak != 5 {
		t.Fatalf("unexpected streaks: %+v", report)
	}
}

func TestWeekly_CurrentStreakRequiresTodaySummary(t *testing.T) {
	engine, tasks, _, store := newTestEngine()
	addTask(t, tasks, "Gym", "Health")
	putSummary(t, store, "2026-01-19", 100, 4, 4)

	report, err := engine.Weekly(today)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if report.CurrentStreak != 0 {
		t.Fatalf("no summary for today must read as streak 0, got %d", report.CurrentStreak)
	}
	if report.LongestStreak != 4 {
		t.Fatalf("longest streak still comes from history, got %d", report.LongestStreak)
	}
}

func TestWeekly_NoTasksReportsNotApplicable(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	report, err := engine.Weekly(today)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if report.StrongestTask != "N/A" || report.WeakestTask != "N/A" {
		t.Fatalf("expected N/A extremes, got %q / %q", report.StrongestTask, report.WeakestTask)
	}
	if report.WeeklyAverage != 0 {
		t.Fatalf("expected zero average, got %v", report.WeeklyAverage)
	}
}

func TestWeekly_ExtremesCountCompletionsInWindow(t *testing.T) {
	engine, tasks, records, _ := newTestEngine()
	strong := addTask(t, tasks, "Gym", "Health")
	mid := addTask(t, tasks, "Read", "Learning")
	addTask(t, tasks, "Meditate", "Health")

	_, _ = records.Upsert(strong.ID, "2026-01-19", true)
	_, _ = records.Upsert(strong.ID, "2026-01-20", true)
	_, _ = records.Upsert(mid.ID, "2026-01-20", true)
	// Completion outside the window must not count.
	_, _ = records.Upsert(mid.ID, "2026-01-01", true)

	report, err := engine.Weekly(today)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if report.StrongestTask != "Gym" {
		t.Fatalf("expected Gym strongest, got %q", report.StrongestTask)
	}
	if report.WeakestTask != "Meditate" {
		t.Fatalf("expected Meditate weakest, got %q", report.WeakestTask)
	}
}

func TestWeekly_TiedExtremesPickEarliestCreatedTask(t *testing.T) {
	engine, tasks, records, _ := newTestEngine()
	first := addTask(t, tasks, "Gym", "Health")
	second := addTask(t, tasks, "Read", "Learning")

	_, _ = records.Upsert(first.ID, "2026-01-20", true)
	_, _ = records.Upsert(second.ID, "2026-01-20", true)

	// With both tasks tied on one completion, the earliest-created task
	// wins both extremes, run after run.
	for i := 0; i < 10; i++ {
		report, err := engine.Weekly(today)
		if err != nil {
			t.Fatalf("weekly: %v", err)
		}
		if report.StrongestTask != "Gym" || report.WeakestTask != "Gym" {
			t.Fatalf("tie must resolve to the first created task, got strongest=%q weakest=%q",
				report.StrongestTask, report.WeakestTask)
		}
	}
}

func TestCategories_CountsCompletedPerCategory(t *testing.T) {
	engine, tasks, records, _ := newTestEngine()
	gym := addTask(t, tasks, "Gym", "Health")
	run := addTask(t, tasks, "Run", "Health")
	read := addTask(t, tasks, "Read", "Learning")

	_, _ = records.Upsert(gym.ID, "2026-01-19", true)
	_, _ = records.Upsert(run.ID, "2026-01-20", true)
	_, _ = records.Upsert(read.ID, "2026-01-20", false)
	// Record for a deleted task is skipped, not counted.
	_, _ = records.Upsert("deleted-task", "2026-01-20", true)

	counts, err := engine.Categories(today)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if counts["Health"] != 2 {
		t.Fatalf("expected Health 2, got %d", counts["Health"])
	}
	if _, ok := counts["Learning"]; ok {
		t.Fatalf("not-completed record must not count, got %v", counts)
	}
	if len(counts) != 1 {
		t.Fatalf("unexpected categories: %v", counts)
	}
}
