package app

import (
	"context"
	"sync"

	"pagequiz/internal/domain"
)

// Generator requests question generation scoped to a topic subset.
type Generator interface {
	GenerateFromTopics(ctx context.Context, quizID string, topicIDs []string, difficulty domain.Difficulty) error
}

// TopicSelection holds the mutable selection set over a quiz's topic
// list. Whenever a topic list with a new version token is observed the
// selection resets to the full id set; it always remains a subset of
// the current list.
type TopicSelection struct {
	mu       sync.Mutex
	version  string
	observed bool
	order    []string
	selected map[string]struct{}
	inflight bool
}

func NewTopicSelection() *TopicSelection {
	return &TopicSelection{selected: make(map[string]struct{})}
}

// Observe records the current topic list. version identifies the
// list; observing the same version again leaves the selection alone,
// a new version selects everything.
func (s *TopicSelection) Observe(version string, topics []domain.Topic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.observed && s.version == version {
		return
	}
	s.version = version
	s.observed = true
	s.order = make([]string, 0, len(topics))
	s.selected = make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		s.order = append(s.order, topic.ID)
		s.selected[topic.ID] = struct{}{}
	}
}

// Toggle flips membership of exactly one topic id and reports the new
// state. Ids outside the observed list are ignored.
func (s *TopicSelection) Toggle(topicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownLocked(topicID) {
		return false
	}
	if _, ok := s.selected[topicID]; ok {
		delete(s.selected, topicID)
		return false
	}
	s.selected[topicID] = struct{}{}
	return true
}

// IsSelected reports membership of a topic id.
func (s *TopicSelection) IsSelected(topicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[topicID]
	return ok
}

// Selected returns the selected ids in topic-list order.
func (s *TopicSelection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

// Count returns the number of selected topics.
func (s *TopicSelection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// Generate issues a generation request for the selected ids. Rejected
// without a network call when the selection is empty, and guarded so a
// second call cannot be issued while one is pending.
func (s *TopicSelection) Generate(ctx context.Context, g Generator, quizID string, difficulty domain.Difficulty) error {
	s.mu.Lock()
	if s.inflight {
		s.mu.Unlock()
		return domain.ErrGenerateInFlight
	}
	ids := s.selectedLocked()
	if len(ids) == 0 {
		s.mu.Unlock()
		return domain.ErrEmptySelection
	}
	s.inflight = true
	s.mu.Unlock()

	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	err := g.GenerateFromTopics(ctx, quizID, ids, difficulty)

	s.mu.Lock()
	s.inflight = false
	s.mu.Unlock()
	return err
}

func (s *TopicSelection) selectedLocked() []string {
	ids := make([]string, 0, len(s.selected))
	for _, id := range s.order {
		if _, ok := s.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *TopicSelection) knownLocked(topicID string) bool {
	for _, id := range s.order {
		if id == topicID {
			return true
		}
	}
	return false
}
