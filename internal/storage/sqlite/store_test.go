package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"growthos/internal/summary"
	"growthos/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "growthos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestTaskRepo_CRUDRoundTrip(t *testing.T) {
	st := openTestStore(t)
	repo := st.Tasks()

	created, err := repo.Create(task.Task{
		Title: "Gym", Category: "Health",
		Frequency: task.FrequencyDaily,
		Priority:  task.PriorityHigh,
		Status:    task.StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Gym" || got.Priority != task.PriorityHigh || got.Status != task.StatusPending {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.CompletedAt != nil {
		t.Fatalf("expected nil completedAt, got %v", got.CompletedAt)
	}

	now := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)
	got.Status = task.StatusCompleted
	got.CompletedAt = &now
	got.TimeSpent = 45
	if _, err := repo.Update(got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt %v, got %v", now, again.CompletedAt)
	}
	if again.TimeSpent != 45 {
		t.Fatalf("expected timeSpent 45, got %d", again.TimeSpent)
	}

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(created.ID); !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepo_UpdateUnknownTask(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Tasks().Update(task.Task{ID: "missing", Title: "x", Frequency: task.FrequencyDaily, Priority: task.PriorityLow, Status: task.StatusPending})
	if !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepo_ExistsByTitle(t *testing.T) {
	st := openTestStore(t)
	repo := st.Tasks()

	created, err := repo.Create(task.Task{Title: "Gym", Frequency: task.FrequencyDaily, Priority: task.PriorityLow, Status: task.StatusPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup, err := repo.ExistsByTitle("Gym", "")
	if err != nil || !dup {
		t.Fatalf("expected duplicate, got dup=%v err=%v", dup, err)
	}
	dup, err = repo.ExistsByTitle("Gym", created.ID)
	if err != nil || dup {
		t.Fatalf("expected no duplicate when excluding self, got dup=%v err=%v", dup, err)
	}
}

func TestLedgerRepo_UpsertReplaces(t *testing.T) {
	st := openTestStore(t)
	repo := st.Ledger()

	if _, err := repo.Upsert("t1", "2026-01-10", true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert("t1", "2026-01-10", false); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	recs, err := repo.FindByDate("2026-01-10")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(recs) != 1 || recs[0].Completed {
		t.Fatalf("expected single not-completed record, got %+v", recs)
	}
}

func TestLedgerRepo_RangeAndCascade(t *testing.T) {
	st := openTestStore(t)
	repo := st.Ledger()

	for _, date := range []string{"2026-01-09", "2026-01-10", "2026-01-11"} {
		if _, err := repo.Upsert("t1", date, true); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	_, _ = repo.Upsert("t2", "2026-01-10", true)

	recs, err := repo.FindInRange("2026-01-10", "2026-01-11")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records in range, got %d", len(recs))
	}

	if err := repo.DeleteAllForTask("t1"); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	recs, _ = repo.FindByDate("2026-01-10")
	if len(recs) != 1 || recs[0].TaskID != "t2" {
		t.Fatalf("expected only t2 left, got %+v", recs)
	}
}

func TestSummaryStore_UpsertAndRange(t *testing.T) {
	st := openTestStore(t)
	store := st.Summaries()

	for _, s := range []summary.Summary{
		{Date: "2026-01-10", TotalTasks: 2, CompletedTasks: 2, CompletionPercentage: 100, Streak: 1, LongestStreak: 1},
		{Date: "2026-01-11", TotalTasks: 2, CompletedTasks: 1, CompletionPercentage: 50, Streak: 0, LongestStreak: 1},
	} {
		if err := store.Upsert(s); err != nil {
			t.Fatalf("upsert %s: %v", s.Date, err)
		}
	}
	// Replacing an existing date keeps one row.
	if err := store.Upsert(summary.Summary{Date: "2026-01-11", TotalTasks: 2, CompletedTasks: 2, CompletionPercentage: 100, Streak: 2, LongestStreak: 2}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	sums, err := store.FindInRange("2026-01-10", "2026-01-11")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(sums) != 2 || sums[0].Date != "2026-01-10" || sums[1].Streak != 2 {
		t.Fatalf("unexpected range result: %+v", sums)
	}

	if _, err := store.FindByDate("2026-02-01"); !errors.Is(err, summary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuoteRepo_AddAndCount(t *testing.T) {
	st := openTestStore(t)
	repo := st.Quotes()

	if _, err := repo.Add("one"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := repo.Add("two"); err != nil {
		t.Fatalf("add: %v", err)
	}
	n, err := repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 quotes, got %d", n)
	}
	quotes, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes listed, got %d", len(quotes))
	}
}
