package app

import (
	"log"

	"pagequiz/internal/domain"
)

// PerformanceBand classifies an aggregate percentage for display.
type PerformanceBand int

const (
	BandNeedsWork PerformanceBand = iota
	BandGood
	BandExcellent
)

func bandFor(percentage int) PerformanceBand {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	default:
		return BandNeedsWork
	}
}

// Heading returns the short banner for a band.
func (b PerformanceBand) Heading() string {
	switch b {
	case BandExcellent:
		return "Excellent Work!"
	case BandGood:
		return "Good Job!"
	default:
		return "Keep Practicing!"
	}
}

// Message returns the longer encouragement line for a band.
func (b PerformanceBand) Message() string {
	switch b {
	case BandExcellent:
		return "You've mastered this quiz! Consider trying a more challenging one."
	case BandGood:
		return "You're on the right track! Review the questions you missed and try again."
	default:
		return "Don't worry! Review the material and try the quiz again to improve your score."
	}
}

// ReviewItem pairs one grading record with its question content. The
// Correct flag is the backend's assertion, never recomputed locally.
type ReviewItem struct {
	Number        int
	Question      domain.Question
	UserAnswer    int
	CorrectAnswer int
	Correct       bool
}

// Review is the displayable reconciliation of a submission against the
// originating quiz. Aggregates come straight from the submission so
// the header and the detail list cannot silently disagree.
type Review struct {
	QuizID         string
	Title          string
	CorrectCount   int
	Percentage     int
	TotalQuestions int
	Band           PerformanceBand
	Items          []ReviewItem
	Skipped        int
}

// BuildReview matches each grading record back to question content,
// by position first with a fallback lookup by question id. Records
// that match nothing are skipped and logged; they never break the rest
// of the review.
func BuildReview(quiz domain.Quiz, result domain.SubmissionResult) Review {
	review := Review{
		QuizID:         quiz.ID,
		Title:          quiz.Title,
		CorrectCount:   result.CorrectCount,
		Percentage:     result.Percentage,
		TotalQuestions: len(result.Results),
		Band:           bandFor(result.Percentage),
	}

	for k, record := range result.Results {
		question, ok := matchQuestion(quiz, k, record)
		if !ok {
			log.Printf("reconcile: no question matches result %d (question id %d) in quiz %s, skipping", k, record.QuestionID, quiz.ID)
			review.Skipped++
			continue
		}

		// The backend flag is authoritative; a disagreement with the
		// naive index comparison is a data-consistency anomaly worth
		// logging, not correcting.
		if (record.UserAnswer == record.CorrectAnswer) != record.IsCorrect {
			log.Printf("reconcile: backend correctness flag disagrees with index comparison for question %d in quiz %s (user=%d correct=%d isCorrect=%v)",
				record.QuestionID, quiz.ID, record.UserAnswer, record.CorrectAnswer, record.IsCorrect)
		}

		if len(question.Options) > maxOptions {
			question.Options = question.Options[:maxOptions]
		}
		review.Items = append(review.Items, ReviewItem{
			Number:        k + 1,
			Question:      question,
			UserAnswer:    record.UserAnswer,
			CorrectAnswer: record.CorrectAnswer,
			Correct:       record.IsCorrect,
		})
	}
	return review
}

// matchQuestion pairs a grading record with question content. The
// positional candidate wins when its id agrees; otherwise the list is
// searched by id, and an id-mismatched positional candidate is kept
// only as a last resort.
func matchQuestion(quiz domain.Quiz, position int, record domain.QuizResult) (domain.Question, bool) {
	var positional *domain.Question
	if position >= 0 && position < len(quiz.Questions) {
		positional = &quiz.Questions[position]
		if positional.ID == record.QuestionID {
			return *positional, true
		}
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == record.QuestionID {
			return quiz.Questions[i], true
		}
	}
	if positional != nil {
		log.Printf("reconcile: question order misaligned at %d in quiz %s (result id %d, question id %d)",
			position, quiz.ID, record.QuestionID, positional.ID)
		return *positional, true
	}
	return domain.Question{}, false
}
