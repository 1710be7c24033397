package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pagequiz/internal/domain"
)

// ResultStore persists submission results in Redis, keyed by quiz id.
// It is the durable stand-in for the browser-local storage the web
// client used: results are written once per successful submit and read
// back verbatim when the results view is (re-)entered.
// Layout: SET quiz:results:{quizID} {json} [EX ttl]
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{client: client, ttl: ttl}
}

func (s *ResultStore) Save(ctx context.Context, quizID string, result domain.SubmissionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := s.client.Set(ctx, s.key(quizID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

func (s *ResultStore) Load(ctx context.Context, quizID string) (domain.SubmissionResult, error) {
	raw, err := s.client.Get(ctx, s.key(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SubmissionResult{}, domain.ErrNoResult
	}
	if err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("load result: %w", err)
	}
	var result domain.SubmissionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return result, nil
}

func (s *ResultStore) key(quizID string) string {
	return "quiz:results:" + quizID
}
