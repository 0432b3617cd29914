package analytics

import (
	"encoding/json"
	"net/http"

	"growthos/internal/clock"
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

// GET /api/analytics/weekly
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	report, err := h.engine.Weekly(h.clock.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /api/analytics/category
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}
	counts, err := h.engine.Categories(h.clock.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
