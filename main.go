package main

import (
	"fmt"
	"log"
	"net/http"

	"growthos/internal/analytics"
	"growthos/internal/clock"
	"growthos/internal/ledger"
	"growthos/internal/quote"
	"growthos/internal/server"
	"growthos/internal/suggest"
	"growthos/internal/summary"
	"growthos/internal/task"
)

const PORT = "8080"

// Dev entry: memory-backed, pre-seeded with a demo dataset. The real
// deployment entry is cmd/server, which reads growthos_config.yml.
func main() {
	taskRepo := task.NewMemoryRepo()
	records := ledger.NewMemoryRepo()
	sums := summary.NewMemoryStore()
	quotes := quote.NewMemoryRepo()
	clk := clock.RealClock{}
	logger := log.Default()

	taskSvc := task.NewService(taskRepo, records, logger)
	sumEngine := summary.NewEngine(taskRepo, records, sums, logger)
	anEngine := analytics.NewEngine(taskRepo, records, sums)
	sugEngine := suggest.NewEngine(taskRepo, records, sums)

	if err := seedDemo(taskSvc, sumEngine, quotes, clk); err != nil {
		log.Fatal(err)
	}

	taskHandler := task.NewHandler(taskSvc, clk)
	sumHandler := summary.NewHandler(sumEngine, clk)
	anHandler := analytics.NewHandler(anEngine, clk)
	sugHandler := suggest.NewHandler(sugEngine, clk)
	quoteHandler := quote.NewHandler(quotes)

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	server.Handle(mux, rr, "GET /api/tasks", "List tasks", "", taskHandler.TasksRoot)
	server.Handle(mux, rr, "POST /api/tasks", "Create a task", "", taskHandler.TasksRoot)
	server.Handle(mux, rr, "POST /api/tasks/history", "Query completed tasks", "", taskHandler.History)
	server.Handle(mux, rr, "GET /api/tasks/{id}", "Fetch one task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "PUT /api/tasks/{id}", "Update a task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "DELETE /api/tasks/{id}", "Delete a task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "PUT /api/tasks/{id}/complete", "Complete a task", "", taskHandler.TasksSub)
	server.Handle(mux, rr, "GET /api/status", "Day view", "", sumHandler.StatusRoot)
	server.Handle(mux, rr, "POST /api/status/{taskId}", "Mark completion", "", sumHandler.StatusSub)
	server.Handle(mux, rr, "GET /api/summary", "Daily summary", "", sumHandler.Summary)
	server.Handle(mux, rr, "GET /api/analytics/weekly", "Weekly report", "", anHandler.Weekly)
	server.Handle(mux, rr, "GET /api/analytics/category", "Category counts", "", anHandler.Categories)
	server.Handle(mux, rr, "GET /api/analytics/suggestions", "Coaching suggestion", "", sugHandler.Suggestion)
	server.Handle(mux, rr, "GET /api/quotes/random", "Random quote", "", quoteHandler.Random)
	mux.HandleFunc("GET /api", rr.Index)

	addr := ":" + PORT
	fmt.Printf("growthos dev server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func seedDemo(svc *task.Service, engine *summary.Engine, quotes quote.Repo, clk clock.Clock) error {
	if err := quote.EnsureSeeded(quotes, nil); err != nil {
		return err
	}

	demo := []task.Input{
		{Title: "Morning Gym", Category: "Health", Frequency: "Daily", Priority: task.PriorityHigh},
		{Title: "Read 20 pages", Category: "Learning", Frequency: "Daily", Priority: task.PriorityMedium},
		{Title: "Interview prep", Category: "Career", Frequency: "Daily", Priority: task.PriorityUrgent},
		{Title: "Weekly review", Category: "Planning", Frequency: "Weekly", Priority: task.PriorityLow},
	}
	created := make([]task.Task, 0, len(demo))
	for _, in := range demo {
		t, err := svc.Create(in)
		if err != nil {
			return err
		}
		created = append(created, t)
	}

	// A few days of history so the analytics endpoints have something to
	// show on first boot.
	now := clk.Now()
	for off := 3; off >= 1; off-- {
		day := now.AddDate(0, 0, -off)
		for i, t := range created {
			if t.Frequency != task.FrequencyDaily {
				continue
			}
			if _, err := engine.MarkCompletion(t.ID, day, i != off%len(created)); err != nil {
				return err
			}
		}
	}
	return nil
}
