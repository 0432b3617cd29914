package summary

import (
	"sort"
	"sync"
)

type MemoryStore struct {
	mu        sync.RWMutex
	summaries map[string]Summary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{summaries: map[string]Summary{}}
}

func (s *MemoryStore) FindByDate(dateKey string) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum, ok := s.summaries[dateKey]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return sum, nil
}

func (s *MemoryStore) FindInRange(from, to string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Summary{}
	for _, sum := range s.summaries {
		if sum.Date >= from && sum.Date <= to {
			out = append(out, sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryStore) FindAllDesc() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.summaries))
	for _, sum := range s.summaries {
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *MemoryStore) Upsert(sum Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[sum.Date] = sum
	return nil
}
