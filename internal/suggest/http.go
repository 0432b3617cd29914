package suggest

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

// GET /api/analytics/suggestions
func (h *Handler) Suggestion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "method not allowed"})
		return
	}
	msg, err := h.engine.Suggest(h.clock.Now())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"suggestion": msg})
}
