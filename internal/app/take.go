package app

import (
	"context"
	"log"
	"sync"

	"pagequiz/internal/domain"
)

// Unanswered is the sentinel for an answer slot with no selection yet.
const Unanswered = -1

// maxOptions caps the options shown per question.
const maxOptions = 4

// Submitter grades a completed answer sequence.
type Submitter interface {
	SubmitAnswers(ctx context.Context, quizID string, answers []int) (domain.SubmissionResult, error)
}

// ResultStore persists submission results client-side, keyed by quiz
// id, so a results view can be redisplayed without resubmitting.
type ResultStore interface {
	Save(ctx context.Context, quizID string, result domain.SubmissionResult) error
	// Load returns domain.ErrNoResult when nothing is stored for the quiz.
	Load(ctx context.Context, quizID string) (domain.SubmissionResult, error)
}

// TakePhase is the quiz-taking state machine phase.
type TakePhase int

const (
	PhaseViewing TakePhase = iota
	PhaseSubmitting
	PhaseSubmitted
)

func (p TakePhase) String() string {
	switch p {
	case PhaseViewing:
		return "viewing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// TakeSession holds per-question answer state across a linear
// navigation sequence. One slot per question, positionally aligned
// with the quiz's question sequence; each slot is Unanswered or an
// option index in [0,3]. Owned exclusively by the view session that
// created it.
type TakeSession struct {
	submitter Submitter
	store     ResultStore
	notifier  Notifier

	mu      sync.Mutex
	quiz    domain.Quiz
	answers []int
	current int
	phase   TakePhase
}

// NewTakeSession starts a session for a ready quiz, initializing every
// answer slot to Unanswered. Questions keep at most four options.
func NewTakeSession(quiz domain.Quiz, submitter Submitter, store ResultStore, notifier Notifier) (*TakeSession, error) {
	if quiz.Status != domain.StatusReady || len(quiz.Questions) == 0 {
		return nil, domain.ErrQuizNotReady
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	questions := make([]domain.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	for i, q := range questions {
		if len(q.Options) > maxOptions {
			questions[i].Options = q.Options[:maxOptions]
		}
	}
	quiz.Questions = questions

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = Unanswered
	}

	return &TakeSession{
		submitter: submitter,
		store:     store,
		notifier:  notifier,
		quiz:      quiz,
		answers:   answers,
		phase:     PhaseViewing,
	}, nil
}

// Quiz returns the session's quiz snapshot.
func (s *TakeSession) Quiz() domain.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Phase returns the current state machine phase.
func (s *TakeSession) Phase() TakePhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Current returns the current question index.
func (s *TakeSession) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Question returns the question at the current index.
func (s *TakeSession) Question() domain.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz.Questions[s.current]
}

// Answer returns the recorded option index for a question index, or
// Unanswered.
func (s *TakeSession) Answer(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.answers) {
		return Unanswered
	}
	return s.answers[index]
}

// SelectOption records option index for the current question,
// replacing any prior selection. It is a no-op outside [0,3], outside
// the viewing phase, or before the answer slots match the question
// count. Returns whether the selection was applied.
func (s *TakeSession) SelectOption(option int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseViewing {
		return false
	}
	if option < 0 || option >= maxOptions {
		return false
	}
	if len(s.answers) != len(s.quiz.Questions) {
		return false
	}
	s.answers[s.current] = option
	return true
}

// Next advances to the next question. Returns false at the last one.
func (s *TakeSession) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseViewing || s.current >= len(s.quiz.Questions)-1 {
		return false
	}
	s.current++
	return true
}

// Previous steps back one question. Returns false at the first one.
func (s *TakeSession) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseViewing || s.current == 0 {
		return false
	}
	s.current--
	return true
}

// CurrentAnswered reports whether the current question has a valid
// selection; the UI gates Next on it.
func (s *TakeSession) CurrentAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answeredLocked(s.current)
}

// AllAnswered reports whether every slot holds a valid option index.
func (s *TakeSession) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allAnsweredLocked()
}

// CanSubmit reports whether submit is currently enabled.
func (s *TakeSession) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseViewing && s.allAnsweredLocked()
}

// Submit grades the answer sequence. A second call while one is in
// flight is rejected; on failure the session returns to viewing at the
// same index with answers untouched. On success the result is
// persisted to the store and the session transitions to submitted.
func (s *TakeSession) Submit(ctx context.Context) (domain.SubmissionResult, error) {
	s.mu.Lock()
	switch s.phase {
	case PhaseSubmitting:
		s.mu.Unlock()
		return domain.SubmissionResult{}, domain.ErrSubmitInFlight
	case PhaseSubmitted:
		s.mu.Unlock()
		return domain.SubmissionResult{}, domain.ErrAlreadySubmitted
	}
	if !s.allAnsweredLocked() {
		s.mu.Unlock()
		return domain.SubmissionResult{}, domain.ErrNotAllAnswered
	}
	s.phase = PhaseSubmitting
	quizID := s.quiz.ID
	answers := make([]int, len(s.answers))
	copy(answers, s.answers)
	s.mu.Unlock()

	result, err := s.submitter.SubmitAnswers(ctx, quizID, answers)
	if err != nil {
		s.mu.Lock()
		s.phase = PhaseViewing
		s.mu.Unlock()
		s.notifier.Notify(LevelError, "Failed to submit quiz: "+err.Error())
		return domain.SubmissionResult{}, err
	}

	if s.store != nil {
		if err := s.store.Save(ctx, quizID, result); err != nil {
			// The submission itself succeeded; losing the local copy
			// only affects later redisplay.
			log.Printf("take: persist result for quiz %s: %v", quizID, err)
			s.notifier.Notify(LevelError, "Result could not be saved locally.")
		}
	}

	s.mu.Lock()
	s.phase = PhaseSubmitted
	s.mu.Unlock()
	s.notifier.Notify(LevelSuccess, "Quiz submitted.")
	return result, nil
}

func (s *TakeSession) answeredLocked(index int) bool {
	if index < 0 || index >= len(s.answers) {
		return false
	}
	a := s.answers[index]
	return a >= 0 && a < maxOptions
}

func (s *TakeSession) allAnsweredLocked() bool {
	if len(s.answers) != len(s.quiz.Questions) {
		return false
	}
	for i := range s.answers {
		if !s.answeredLocked(i) {
			return false
		}
	}
	return true
}
