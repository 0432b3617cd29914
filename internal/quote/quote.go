// Package quote serves the motivational quotes shown on the dashboard.
package quote

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

var ErrNoQuotes = errors.New("no quotes available")

type Quote struct {
	ID        string `json:"id"`
	QuoteText string `json:"quoteText"`
}

type Repo interface {
	Add(text string) (Quote, error)
	ListAll() ([]Quote, error)
	Count() (int, error)
}

type MemoryRepo struct {
	mu     sync.RWMutex
	quotes []Quote
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Add(text string) (Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := Quote{ID: uuid.NewString(), QuoteText: text}
	r.quotes = append(r.quotes, q)
	return q, nil
}

func (r *MemoryRepo) ListAll() ([]Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Quote, len(r.quotes))
	copy(out, r.quotes)
	return out, nil
}

func (r *MemoryRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quotes), nil
}

// Random picks one quote at random, erroring only when none are stored.
// A nil rng falls back to the global source, which is concurrency safe.
func Random(repo Repo, rng *rand.Rand) (Quote, error) {
	quotes, err := repo.ListAll()
	if err != nil {
		return Quote{}, err
	}
	if len(quotes) == 0 {
		return Quote{}, ErrNoQuotes
	}
	if rng != nil {
		return quotes[rng.Intn(len(quotes))], nil
	}
	return quotes[rand.Intn(len(quotes))], nil
}
