package ledger

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("completion record not found")

// Repo is the interface for completion-record persistence.
type Repo interface {
	// Upsert inserts or replaces the record for (taskID, date).
	Upsert(taskID, date string, completed bool) (Record, error)
	FindByDate(date string) ([]Record, error)
	FindByTaskAndDate(taskID, date string) (Record, error)
	// FindInRange returns records with from <= date <= to.
	FindInRange(from, to string) ([]Record, error)
	DeleteAllForTask(taskID string) error
}

type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: map[string]Record{}}
}

func (r *MemoryRepo) Upsert(taskID, date string, completed bool) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := Record{TaskID: taskID, Date: date, Completed: completed}
	r.records[recordKey(taskID, date)] = rec
	return rec, nil
}

func (r *MemoryRepo) FindByDate(date string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) FindByTaskAndDate(taskID, date string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[recordKey(taskID, date)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) FindInRange(from, to string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, rec := range r.records {
		if rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemoryRepo) DeleteAllForTask(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.records {
		if rec.TaskID == taskID {
			delete(r.records, key)
		}
	}
	return nil
}
