package domain

import "errors"

var (
	// ErrQuizNotReady is returned when a quiz session is started before the quiz reaches ready.
	ErrQuizNotReady = errors.New("quiz is not ready")
	// ErrAuthRequired blocks authenticated calls before any network I/O when no credential is configured.
	ErrAuthRequired = errors.New("sign in required")
	// ErrNoResult is returned when no submission result is stored for a quiz.
	ErrNoResult = errors.New("no stored result for quiz")
	// ErrEmptySelection rejects generation with no topics selected.
	ErrEmptySelection = errors.New("no topics selected")
	// ErrGenerateInFlight guards against concurrent generation requests.
	ErrGenerateInFlight = errors.New("generation already in progress")
	// ErrSubmitInFlight guards against concurrent submissions.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrAlreadySubmitted is returned when submitting a finished session again.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrNotAllAnswered is returned when submitting with unanswered questions.
	ErrNotAllAnswered = errors.New("all questions must be answered before submitting")
)

// ValidationError is malformed user input caught before any network
// call. It is rendered inline and never sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
