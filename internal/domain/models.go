package domain

import "time"

// QuizStatus is the closed set of states a quiz resource moves through
// on the backend. processing may transition to processing_topics or
// straight to ready; any state may transition to failed.
type QuizStatus string

const (
	StatusProcessing       QuizStatus = "processing"
	StatusProcessingTopics QuizStatus = "processing_topics"
	StatusReady            QuizStatus = "ready"
	StatusFailed           QuizStatus = "failed"
)

// Known reports whether the status is one the client understands.
func (s QuizStatus) Known() bool {
	switch s {
	case StatusProcessing, StatusProcessingTopics, StatusReady, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further backend-driven transition can occur.
func (s QuizStatus) Terminal() bool {
	switch s {
	case StatusReady, StatusFailed:
		return true
	case StatusProcessing, StatusProcessingTopics:
		return false
	default:
		return false
	}
}

// Label returns the display name for a status.
func (s QuizStatus) Label() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusProcessingTopics:
		return "Selecting Topics"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// Difficulty scopes question generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question models an MCQ question with four options and one correct
// option index. Immutable once fetched.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Quiz is the server-owned snapshot of one generation pipeline run.
// The client holds it read-only.
type Quiz struct {
	ID        string     `json:"id"`
	SourceURL string     `json:"sourceUrl"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	Status    QuizStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Topic is a backend-extracted content cluster from the source page.
type Topic struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Summary       string `json:"summary,omitempty"`
	Level         int    `json:"level"`
	TokenEstimate int    `json:"tokenEstimate"`
}

// TopicList is the set of topics produced once per quiz.
type TopicList struct {
	QuizID string  `json:"quizId"`
	Topics []Topic `json:"topics"`
}

// QuizResult is one graded answer as asserted by the backend.
type QuizResult struct {
	QuestionID    int  `json:"questionId"`
	UserAnswer    int  `json:"userAnswer"`
	CorrectAnswer int  `json:"correctAnswer"`
	IsCorrect     bool `json:"isCorrect"`
}

// SubmissionResult is the graded outcome of one submit call. Created
// once by a successful submit and immutable thereafter.
type SubmissionResult struct {
	Score        int          `json:"score"`
	CorrectCount int          `json:"correctCount"`
	Percentage   int          `json:"percentage"`
	Results      []QuizResult `json:"results"`
}
