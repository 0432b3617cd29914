package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"growthos/internal/clock"
	"growthos/internal/task"
)

type Handler struct {
	engine *Engine
	clock  clock.Clock
}

func NewHandler(engine *Engine, clk clock.Clock) *Handler {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Handler{engine: engine, clock: clk}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// dateParam resolves the optional ?date=YYYY-MM-DD query, defaulting to
// the clock's today.
func (h *Handler) dateParam(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return h.clock.Now(), nil
	}
	return time.Parse(dateLayout, raw)
}

// GET /api/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	date, err := h.dateParam(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	sum, err := h.engine.Get(date)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GET /api/status lists the day's trackable tasks with completion flags.
func (h *Handler) StatusRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	date, err := h.dateParam(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	out, err := h.engine.TasksWithStatus(date)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type markRequest struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// POST /api/status/{taskId}
func (h *Handler) StatusSub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	taskID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/status/"), "/")
	if taskID == "" {
		writeErr(w, http.StatusNotFound, "task id required")
		return
	}

	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	date := h.clock.Now()
	if strings.TrimSpace(req.Date) != "" {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	rec, err := h.engine.MarkCompletion(taskID, date, req.Completed)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
