package quote

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

type fileState struct {
	Quotes []Quote `json:"quotes"`
}

type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "quotes.json")}
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
	return json.Unmarshal(b, &r.s)
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Add(text string) (Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := Quote{ID: uuid.NewString(), QuoteText: text}
	r.s.Quotes = append(r.s.Quotes, q)
	if err := r.saveLocked(); err != nil {
		return Quote{}, err
	}
	return q, nil
}

func (r *FileRepo) ListAll() ([]Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Quote, len(r.s.Quotes))
	copy(out, r.s.Quotes)
	return out, nil
}

func (r *FileRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.s.Quotes), nil
}
