package task

import (
	"errors"
	"sort"
)

var (
	ErrNotFound       = errors.New("task not found")
	ErrDuplicateTitle = errors.New("task title already exists")
	ErrInvalidState   = errors.New("task already completed")
	ErrInvalidRange   = errors.New("start date cannot be after end date")
)

// Repo is the interface for task persistence. The engine never assumes a
// specific query language; any backend satisfying this interface is valid.
type Repo interface {
	Create(t Task) (Task, error)
	Get(id string) (Task, error)
	Update(t Task) (Task, error)
	Delete(id string) error
	ListAll() ([]Task, error)

	// ExistsByTitle reports whether another task already uses the title.
	// excludeID is ignored when empty.
	ExistsByTitle(title, excludeID string) (bool, error)
}

// sortByCreation orders tasks oldest first, falling back to ID when two
// tasks share a creation instant. ListAll must return the same order on
// every backend so that first-match selections downstream do not depend
// on the storage choice.
func sortByCreation(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
