package summary

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"growthos/internal/clock"
	"growthos/internal/ledger"
	"growthos/internal/task"
)

func newHTTPFixture(t *testing.T) (*Handler, task.Repo) {
	t.Helper()
	tasks := task.NewMemoryRepo()
	engine := NewEngine(tasks, ledger.NewMemoryRepo(), NewMemoryStore(), nil)
	clk := clock.NewFakeClock(time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC))
	return NewHandler(engine, clk), tasks
}

func TestSummaryHandler_DefaultsToToday(t *testing.T) {
	h, _ := newHTTPFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"date":"2026-01-20"`) {
		t.Fatalf("expected today's date in body, got %s", rec.Body.String())
	}
}

func TestSummaryHandler_RejectsBadDate(t *testing.T) {
	h, _ := newHTTPFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary?date=20-01-2026", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", rec.Code)
	}
}

func TestStatusSub_UnknownTaskIs404(t *testing.T) {
	h, _ := newHTTPFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/status/ghost", strings.NewReader(`{"completed":true}`))
	rec := httptest.NewRecorder()
	h.StatusSub(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStatusSub_MarksForExplicitDate(t *testing.T) {
	h, tasks := newHTTPFixture(t)
	created, err := tasks.Create(task.Task{Title: "Gym", Frequency: task.FrequencyDaily, Priority: task.PriorityLow, Status: task.StatusPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/status/"+created.ID, strings.NewReader(`{"date":"2026-01-18","completed":true}`))
	rec := httptest.NewRecorder()
	h.StatusSub(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"date":"2026-01-18"`) {
		t.Fatalf("expected record for the requested date, got %s", rec.Body.String())
	}
}
