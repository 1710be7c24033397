package memory

import (
	"context"
	"sync"

	"pagequiz/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore, used
// when no Redis address is configured. Last write wins; there are no
// concurrent writers for a given quiz in practice.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.SubmissionResult
}

func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]domain.SubmissionResult)}
}

func (s *ResultStore) Save(_ context.Context, quizID string, result domain.SubmissionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[quizID] = result
	return nil
}

func (s *ResultStore) Load(_ context.Context, quizID string) (domain.SubmissionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[quizID]
	if !ok {
		return domain.SubmissionResult{}, domain.ErrNoResult
	}
	return result, nil
}
