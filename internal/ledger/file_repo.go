package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type fileState struct {
	Records map[string]Record `json:"records"`
}

// FileRepo is a persistent completion-record repository backed by a JSON
// file, keyed by "taskID@date".
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "completions.json"),
		s:    fileState{Records: map[string]Record{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Records == nil {
		loaded.Records = map[string]Record{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Upsert(taskID, date string, completed bool) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := Record{TaskID: taskID, Date: date, Completed: completed}
	r.s.Records[recordKey(taskID, date)] = rec
	if err := r.saveLocked(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *FileRepo) FindByDate(date string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, rec := range r.s.Records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *FileRepo) FindByTaskAndDate(taskID, date string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.s.Records[recordKey(taskID, date)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *FileRepo) FindInRange(from, to string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Record{}
	for _, rec := range r.s.Records {
		if rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *FileRepo) DeleteAllForTask(taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	for key, rec := range r.s.Records {
		if rec.TaskID == taskID {
			delete(r.s.Records, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.saveLocked()
}
