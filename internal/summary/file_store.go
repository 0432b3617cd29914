package summary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type fileState struct {
	Summaries map[string]Summary `json:"summaries"`
}

// FileStore persists summaries in a JSON file keyed by date.
type FileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &FileStore{
		path: filepath.Join(dataDir, "summaries.json"),
		s:    fileState{Summaries: map[string]Summary{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *FileStore) load() error {
	b, err := os.ReadFile(st.path)
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
	if loaded.Summaries == nil {
		loaded.Summaries = map[string]Summary{}
	}
	st.s = loaded
	return nil
}

func (st *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(st.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, b, 0o644)
}

func (st *FileStore) FindByDate(dateKey string) (Summary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	sum, ok := st.s.Summaries[dateKey]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return sum, nil
}

func (st *FileStore) FindInRange(from, to string) ([]Summary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := []Summary{}
	for _, sum := range st.s.Summaries {
		if sum.Date >= from && sum.Date <= to {
			out = append(out, sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (st *FileStore) FindAllDesc() ([]Summary, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]Summary, 0, len(st.s.Summaries))
	for _, sum := range st.s.Summaries {
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (st *FileStore) Upsert(sum Summary) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.s.Summaries[sum.Date] = sum
	return st.saveLocked()
}
