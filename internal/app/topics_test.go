package app_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"pagequiz/internal/app"
	"pagequiz/internal/domain"
)

type fakeGenerator struct {
	mu         sync.Mutex
	err        error
	calls      int
	lastIDs    []string
	lastDiff   domain.Difficulty
	started    chan struct{}
	release    chan struct{}
	lastQuizID string
}

func (g *fakeGenerator) GenerateFromTopics(_ context.Context, quizID string, topicIDs []string, difficulty domain.Difficulty) error {
	g.mu.Lock()
	g.calls++
	g.lastQuizID = quizID
	g.lastIDs = append([]string(nil), topicIDs...)
	g.lastDiff = difficulty
	started := g.started
	release := g.release
	err := g.err
	g.mu.Unlock()

	if started != nil {
		close(started)
		g.mu.Lock()
		g.started = nil
		g.mu.Unlock()
	}
	if release != nil {
		<-release
	}
	return err
}

func topicList(ids ...string) []domain.Topic {
	topics := make([]domain.Topic, 0, len(ids))
	for _, id := range ids {
		topics = append(topics, domain.Topic{ID: id, Title: "Topic " + id})
	}
	return topics
}

func TestObserveSelectsEverythingInitially(t *testing.T) {
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1", "t2", "t3"))

	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Fatalf("selected = %v", got)
	}
}

func TestObserveNewVersionResetsToFullSet(t *testing.T) {
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1", "t2"))
	sel.Toggle("t1")

	// Same version: selection untouched.
	sel.Observe("v1", topicList("t1", "t2"))
	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"t2"}) {
		t.Fatalf("selection changed on same version: %v", got)
	}

	// New version: full set of the new list, prior selection irrelevant.
	sel.Observe("v2", topicList("t4", "t5", "t6"))
	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"t4", "t5", "t6"}) {
		t.Fatalf("selected = %v", got)
	}
}

func TestToggleFlipsExactlyOneID(t *testing.T) {
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1", "t2", "t3"))

	sel.Toggle("t2")
	if sel.IsSelected("t2") {
		t.Fatalf("t2 still selected after toggle")
	}
	if !sel.IsSelected("t1") || !sel.IsSelected("t3") {
		t.Fatalf("toggle affected other ids")
	}

	sel.Toggle("t2")
	if !sel.IsSelected("t2") {
		t.Fatalf("t2 not reselected")
	}
}

func TestToggleIgnoresUnknownID(t *testing.T) {
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1"))
	sel.Toggle("nope")
	if got := sel.Selected(); !reflect.DeepEqual(got, []string{"t1"}) {
		t.Fatalf("unknown toggle changed selection: %v", got)
	}
}

func TestGenerateRejectsEmptySelection(t *testing.T) {
	gen := &fakeGenerator{}
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1", "t2"))
	sel.Toggle("t1")
	sel.Toggle("t2")

	err := sel.Generate(context.Background(), gen, "q1", domain.DifficultyMedium)
	if !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times, want 0", gen.calls)
	}
}

func TestGenerateGuardsInFlightCalls(t *testing.T) {
	gen := &fakeGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t1"))

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- sel.Generate(context.Background(), gen, "q1", domain.DifficultyMedium)
	}()

	select {
	case <-gen.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first generate never started")
	}

	if err := sel.Generate(context.Background(), gen, "q1", domain.DifficultyMedium); !errors.Is(err, domain.ErrGenerateInFlight) {
		t.Fatalf("expected ErrGenerateInFlight, got %v", err)
	}

	close(gen.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}

	// Guard lifts once the request settles.
	if err := sel.Generate(context.Background(), gen, "q1", domain.DifficultyMedium); err != nil {
		t.Fatalf("second generate after settle: %v", err)
	}
}

func TestGenerateDefaultsDifficultyAndKeepsOrder(t *testing.T) {
	gen := &fakeGenerator{}
	sel := app.NewTopicSelection()
	sel.Observe("v1", topicList("t3", "t1", "t2"))
	sel.Toggle("t1")

	if err := sel.Generate(context.Background(), gen, "q1", ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gen.lastDiff != domain.DifficultyMedium {
		t.Fatalf("difficulty = %q, want medium", gen.lastDiff)
	}
	if !reflect.DeepEqual(gen.lastIDs, []string{"t3", "t2"}) {
		t.Fatalf("ids = %v, want topic-list order", gen.lastIDs)
	}
	if gen.lastQuizID != "q1" {
		t.Fatalf("quiz id = %q", gen.lastQuizID)
	}
}
