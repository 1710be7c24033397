package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pagequiz/internal/domain"
)

func TestResultStoreRoundTrip(t *testing.T) {
	store := NewResultStore()
	result := domain.SubmissionResult{
		Score:        2,
		CorrectCount: 2,
		Percentage:   67,
		Results: []domain.QuizResult{
			{QuestionID: 1, UserAnswer: 0, CorrectAnswer: 0, IsCorrect: true},
			{QuestionID: 2, UserAnswer: 1, CorrectAnswer: 2, IsCorrect: false},
		},
	}

	if err := store.Save(context.Background(), "q1", result); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background(), "q1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, result) {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestResultStoreMissing(t *testing.T) {
	store := NewResultStore()
	_, err := store.Load(context.Background(), "unknown")
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}
