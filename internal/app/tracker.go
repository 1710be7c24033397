package app

import (
	"context"
	"log"
	"sync"
	"time"

	"pagequiz/internal/domain"
)

// DefaultPollInterval is the fixed delay between lifecycle fetches
// while a quiz is still processing.
const DefaultPollInterval = 2 * time.Second

// QuizFetcher loads the current quiz snapshot from the backend.
type QuizFetcher interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// Tracker follows one quiz resource through its lifecycle. After each
// successful fetch it schedules exactly one more fetch while the
// status is processing; any other status suspends polling until the
// caller explicitly tracks again. At most one poll is in flight at a
// time, and results from a superseded Track call never overwrite
// current state.
type Tracker struct {
	fetcher  QuizFetcher
	interval time.Duration

	mu          sync.Mutex
	quizID      string
	gen         int
	snapshot    *domain.Quiz
	lastErr     error
	cancel      context.CancelFunc
	done        chan struct{}
	subscribers map[chan domain.Quiz]struct{}
}

func NewTracker(fetcher QuizFetcher, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		fetcher:     fetcher,
		interval:    interval,
		subscribers: make(map[chan domain.Quiz]struct{}),
	}
}

// Track starts following quizID with an immediate initial fetch.
// Tracking a different id discards the previous snapshot and restarts;
// a pending poll for the old id is cancelled and its late result
// discarded. Calling Track again for the current id resumes polling
// after a suspension (e.g. once the user has requested generation).
func (t *Tracker) Track(ctx context.Context, quizID string) {
	if quizID == "" {
		return
	}

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	if quizID != t.quizID {
		t.snapshot = nil
		t.lastErr = nil
	}
	t.quizID = quizID
	t.gen++
	gen := t.gen
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	done := make(chan struct{})
	t.done = done
	t.mu.Unlock()

	go t.run(runCtx, quizID, gen, done)
}

func (t *Tracker) run(ctx context.Context, quizID string, gen int, done chan struct{}) {
	defer close(done)
	for {
		quiz, err := t.fetcher.GetQuiz(ctx, quizID)
		if ctx.Err() != nil {
			return
		}
		if !t.apply(gen, quiz, err) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(t.interval):
		}
	}
}

// apply records a settled fetch and reports whether another poll
// should be scheduled. Stale results (from a superseded generation)
// are dropped entirely.
func (t *Tracker) apply(gen int, quiz domain.Quiz, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		return false
	}
	if err != nil {
		// Surfaced via Err; the schedule decision still follows the
		// last known snapshot.
		t.lastErr = err
		return t.keepPollingLocked()
	}
	t.lastErr = nil
	q := quiz
	t.snapshot = &q
	t.broadcastLocked(quiz)
	return t.keepPollingLocked()
}

func (t *Tracker) keepPollingLocked() bool {
	if t.snapshot == nil {
		return false
	}
	switch t.snapshot.Status {
	case domain.StatusProcessing:
		return true
	case domain.StatusProcessingTopics, domain.StatusReady, domain.StatusFailed:
		return false
	default:
		log.Printf("tracker: unknown status %q for quiz %s, polling suspended", t.snapshot.Status, t.quizID)
		return false
	}
}

// Snapshot returns the most recent known quiz state.
func (t *Tracker) Snapshot() (domain.Quiz, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.snapshot == nil {
		return domain.Quiz{}, false
	}
	return *t.snapshot, true
}

// Err returns the error from the most recent fetch cycle, if any.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// Done returns a channel closed when the current poll loop settles,
// either by suspension or cancellation. Returns a closed channel when
// nothing is being tracked.
func (t *Tracker) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.done
}

// Stop cancels any pending poll. The snapshot remains readable.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
	t.mu.Unlock()
}

// Subscribe returns a channel receiving snapshot updates, primed with
// the current snapshot when one exists. The caller must invoke the
// returned cancel function to avoid leaks.
func (t *Tracker) Subscribe() (<-chan domain.Quiz, func()) {
	ch := make(chan domain.Quiz, 8)

	t.mu.Lock()
	t.subscribers[ch] = struct{}{}
	var initial *domain.Quiz
	if t.snapshot != nil {
		q := *t.snapshot
		initial = &q
	}
	t.mu.Unlock()

	if initial != nil {
		ch <- *initial
	}

	cancel := func() {
		t.mu.Lock()
		if _, ok := t.subscribers[ch]; ok {
			delete(t.subscribers, ch)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, cancel
}

func (t *Tracker) broadcastLocked(quiz domain.Quiz) {
	for ch := range t.subscribers {
		select {
		case ch <- quiz:
		default:
			// Drop the oldest update so slow consumers never block the
			// poll loop.
			select {
			case <-ch:
			default:
			}
			ch <- quiz
		}
	}
}
