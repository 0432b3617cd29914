package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"growthos/internal/analytics"
	"growthos/internal/clock"
	"growthos/internal/config"
	"growthos/internal/httpmw"
	"growthos/internal/ledger"
	"growthos/internal/quote"
	"growthos/internal/server"
	"growthos/internal/storage/sqlite"
	"growthos/internal/suggest"
	"growthos/internal/summary"
	"growthos/internal/task"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
	Clock  clock.Clock
}

// stores bundles one repository per entity, all backed by the same
// configured backend. The sqlite handle stays open for the process
// lifetime.
type stores struct {
	tasks   task.Repo
	records ledger.Repo
	sums    summary.Store
	quotes  quote.Repo
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return &stores{
			tasks:   task.NewMemoryRepo(),
			records: ledger.NewMemoryRepo(),
			sums:    summary.NewMemoryStore(),
			quotes:  quote.NewMemoryRepo(),
		}, nil

	case config.BackendFile:
		tasks, err := task.NewFileRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		records, err := ledger.NewFileRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		sums, err := summary.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		quotes, err := quote.NewFileRepo(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return &stores{tasks: tasks, records: records, sums: sums, quotes: quotes}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			tasks:   db.Tasks(),
			records: db.Ledger(),
			sums:    db.Summaries(),
			quotes:  db.Quotes(),
		}, nil

	default:
		return nil, errors.New("unknown storage backend: " + cfg.Storage.Backend)
	}
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}

	st, err := openStores(opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Config.Quotes.Seed {
		if err := quote.EnsureSeeded(st.quotes, opts.Logger); err != nil {
			return nil, err
		}
	}

	taskSvc := task.NewService(st.tasks, st.records, opts.Logger)
	sumEngine := summary.NewEngine(st.tasks, st.records, st.sums, opts.Logger)
	anEngine := analytics.NewEngine(st.tasks, st.records, st.sums)
	sugEngine := suggest.NewEngine(st.tasks, st.records, st.sums)

	taskHandler := task.NewHandler(taskSvc, opts.Clock)
	sumHandler := summary.NewHandler(sumEngine, opts.Clock)
	anHandler := analytics.NewHandler(anEngine, opts.Clock)
	sugHandler := suggest.NewHandler(sugEngine, opts.Clock)
	quoteHandler := quote.NewHandler(st.quotes)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	server.Handle(mux, rr, "GET /api/tasks", "List tasks, pending first then by priority", "", taskHandler.TasksRoot)
	server.Handle(mux, rr, "POST /api/tasks", "Create a task", `{"title":"Gym","category":"Health","frequency":"Daily","priority":"HIGH"}`, taskHandler.TasksRoot)
	server.Handle(mux, rr, "POST /api/tasks/history", "Query completed tasks with filters and paging", `{"category":"Health","sortBy":"priority","page":0,"size":10}`, taskHandler.History)
	server.Handle(mux, rr, "GET /api/tasks/{id}", "Fetch one task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "PUT /api/tasks/{id}", "Update a task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "DELETE /api/tasks/{id}", "Delete a task and its completion records", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "PUT /api/tasks/{id}/complete", "Mark a one-shot task completed", `{"note":"done","timeSpent":30}`, taskHandler.TasksSub)

	server.Handle(mux, rr, "GET /api/status", "Tasks trackable on a day with completion flags", "", sumHandler.StatusRoot)
	server.Handle(mux, rr, "POST /api/status/{taskId}", "Set a task's completion for a day", `{"date":"2026-01-15","completed":true}`, sumHandler.StatusSub)
	server.Handle(mux, rr, "GET /api/summary", "Daily summary with streaks", "", sumHandler.Summary)

	server.Handle(mux, rr, "GET /api/analytics/weekly", "Seven-day progress report", "", anHandler.Weekly)
	server.Handle(mux, rr, "GET /api/analytics/category", "Completion counts per category", "", anHandler.Categories)
	server.Handle(mux, rr, "GET /api/analytics/suggestions", "One coaching suggestion", "", sugHandler.Suggestion)

	server.Handle(mux, rr, "GET /api/quotes/random", "A random motivational quote", "", quoteHandler.Random)

	mux.HandleFunc("GET /api", rr.Index)
	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "growthos",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := st.tasks.ListAll(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "task storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "growthos",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithCORS(opts.Config.Server.CORSOrigins),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
