package task

import (
	"log"
	"sort"
	"strings"
	"time"
)

// LedgerCleaner removes a task's completion records. Implemented by the
// ledger repos; kept as a local interface so the task package does not
// depend on ledger internals.
type LedgerCleaner interface {
	DeleteAllForTask(taskID string) error
}

// Service handles task business logic: unique-title enforcement, the
// one-shot completion lifecycle, and cascading ledger cleanup on delete.
type Service struct {
	repo   Repo
	ledger LedgerCleaner
	logger *log.Logger
}

func NewService(repo Repo, ledger LedgerCleaner, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{repo: repo, ledger: ledger, logger: logger}
}

type Input struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Frequency     string   `json:"frequency"`
	ScheduledDate string   `json:"scheduledDate"`
	Priority      Priority `json:"priority"`
}

func (in Input) toTask() (Task, error) {
	freq, err := ParseFrequency(in.Frequency)
	if err != nil {
		return Task{}, err
	}
	prio := in.Priority
	if prio == "" {
		prio = PriorityMedium
	}
	t := Task{
		Title:         strings.TrimSpace(in.Title),
		Category:      strings.TrimSpace(in.Category),
		Frequency:     freq,
		ScheduledDate: strings.TrimSpace(in.ScheduledDate),
		Priority:      prio,
		Status:        StatusPending,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) Create(in Input) (Task, error) {
	t, err := in.toTask()
	if err != nil {
		return Task{}, err
	}
	dup, err := s.repo.ExistsByTitle(t.Title, "")
	if err != nil {
		return Task{}, err
	}
	if dup {
		return Task{}, ErrDuplicateTitle
	}
	created, err := s.repo.Create(t)
	if err != nil {
		return Task{}, err
	}
	s.logger.Printf("created task %s (%s)", created.ID, created.Title)
	return created, nil
}

func (s *Service) Update(id string, in Input) (Task, error) {
	existing, err := s.repo.Get(id)
	if err != nil {
		return Task{}, err
	}
	next, err := in.toTask()
	if err != nil {
		return Task{}, err
	}
	dup, err := s.repo.ExistsByTitle(next.Title, id)
	if err != nil {
		return Task{}, err
	}
	if dup {
		return Task{}, ErrDuplicateTitle
	}

	existing.Title = next.Title
	existing.Category = next.Category
	existing.Frequency = next.Frequency
	existing.ScheduledDate = next.ScheduledDate
	existing.Priority = next.Priority

	return s.repo.Update(existing)
}

// Complete flips the one-shot lifecycle status to COMPLETED. This is
// independent of the per-day completion ledger: the flag can only be set
// once, while ledger entries toggle freely per day.
func (s *Service) Complete(id, note string, timeSpent int, now time.Time) (Task, error) {
	t, err := s.repo.Get(id)
	if err != nil {
		return Task{}, err
	}
	if t.Status == StatusCompleted {
		return Task{}, ErrInvalidState
	}

	t.Status = StatusCompleted
	t.CompletionNote = note
	t.TimeSpent = timeSpent
	t.CompletedAt = &now

	saved, err := s.repo.Update(t)
	if err != nil {
		return Task{}, err
	}
	s.logger.Printf("task %s marked COMPLETED", id)
	return saved, nil
}

// Delete removes a task and synchronously cascades deletion of its ledger
// records, so later aggregations never see orphaned entries.
func (s *Service) Delete(id string) error {
	if _, err := s.repo.Get(id); err != nil {
		return err
	}
	if err := s.ledger.DeleteAllForTask(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Printf("deleted task %s and its completion history", id)
	return nil
}

func (s *Service) Get(id string) (Task, error) {
	return s.repo.Get(id)
}

// List returns all tasks, PENDING before COMPLETED, then by priority
// weight descending.
func (s *Service) List() ([]Task, error) {
	tasks, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		iPending := tasks[i].Status != StatusCompleted
		jPending := tasks[j].Status != StatusCompleted
		if iPending != jPending {
			return iPending
		}
		return tasks[i].Priority.Weight() > tasks[j].Priority.Weight()
	})
	return tasks, nil
}
