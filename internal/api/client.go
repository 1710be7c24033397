package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pagequiz/internal/domain"
)

const defaultBaseURL = "http://localhost:8080/api"

// TokenProvider supplies the opaque bearer credential issued by the
// external identity collaborator. ok is false when no credential is
// available.
type TokenProvider interface {
	Token() (token string, ok bool)
}

// StaticToken is a TokenProvider holding a fixed credential. The empty
// string means "not signed in".
type StaticToken string

func (t StaticToken) Token() (string, bool) {
	s := strings.TrimSpace(string(t))
	return s, s != ""
}

// Client is a stateless wrapper around the quiz backend. All transport
// and backend failures come back as *APIError; input problems come
// back as *domain.ValidationError before any network I/O.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	validate   *validator.Validate
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenProvider) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateQuizRequest starts the generation pipeline for a source page.
type CreateQuizRequest struct {
	SourceURL string `json:"source_url" validate:"required,url"`
}

// CreateQuizResponse acknowledges quiz creation.
type CreateQuizResponse struct {
	QuizID  string            `json:"quiz_id"`
	Status  domain.QuizStatus `json:"status"`
	Message string            `json:"message"`
}

type generateRequest struct {
	TopicIDs   []string          `json:"topicIds"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

type submitRequest struct {
	Answers []int `json:"answers"`
}

// ValidateSourceURL enforces the http/https URL rule before anything
// touches the network.
func ValidateSourceURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &domain.ValidationError{Field: "source_url", Message: "Please enter a URL"}
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return &domain.ValidationError{Field: "source_url", Message: "Please enter a valid URL (e.g., https://example.com)"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &domain.ValidationError{Field: "source_url", Message: "URL must start with http:// or https://"}
	}
	return nil
}

// CreateQuiz submits a source URL for quiz generation. Requires a
// credential; malformed URLs are rejected without a network call.
func (c *Client) CreateQuiz(ctx context.Context, sourceURL string) (CreateQuizResponse, error) {
	if err := ValidateSourceURL(sourceURL); err != nil {
		return CreateQuizResponse{}, err
	}
	req := CreateQuizRequest{SourceURL: strings.TrimSpace(sourceURL)}
	if err := c.validate.Struct(req); err != nil {
		return CreateQuizResponse{}, &domain.ValidationError{Field: "source_url", Message: "Please enter a valid URL (e.g., https://example.com)"}
	}
	if _, ok := c.tokens.Token(); !ok {
		return CreateQuizResponse{}, domain.ErrAuthRequired
	}

	var resp CreateQuizResponse
	if err := c.doJSON(ctx, http.MethodPost, "/quizzes", req, &resp,
		"Failed to create quiz. Please check your connection and try again."); err != nil {
		return CreateQuizResponse{}, err
	}
	return resp, nil
}

// GetQuiz fetches the latest quiz snapshot by id.
func (c *Client) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(quizID), nil, &quiz,
		"Failed to fetch quiz. Please check your connection and try again."); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// GetTopics fetches the extracted topic list for a quiz.
func (c *Client) GetTopics(ctx context.Context, quizID string) (domain.TopicList, error) {
	var topics domain.TopicList
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(quizID)+"/topics", nil, &topics,
		"Failed to fetch quiz topics. Please check your connection and try again."); err != nil {
		return domain.TopicList{}, err
	}
	return topics, nil
}

// GenerateFromTopics asks the backend to generate questions scoped to
// the selected topics. The quiz status transitions asynchronously.
func (c *Client) GenerateFromTopics(ctx context.Context, quizID string, topicIDs []string, difficulty domain.Difficulty) error {
	if len(topicIDs) == 0 {
		return domain.ErrEmptySelection
	}
	if difficulty == "" {
		difficulty = domain.DifficultyMedium
	}
	req := generateRequest{TopicIDs: topicIDs, Difficulty: difficulty}
	return c.doJSON(ctx, http.MethodPost, "/quizzes/"+url.PathEscape(quizID)+"/generate", req, nil,
		"Failed to generate quiz from topics. Please check your connection and try again.")
}

// SubmitAnswers grades the positional answer slice. Requires a
// credential.
func (c *Client) SubmitAnswers(ctx context.Context, quizID string, answers []int) (domain.SubmissionResult, error) {
	if _, ok := c.tokens.Token(); !ok {
		return domain.SubmissionResult{}, domain.ErrAuthRequired
	}
	var result domain.SubmissionResult
	if err := c.doJSON(ctx, http.MethodPost, "/quizzes/"+url.PathEscape(quizID)+"/submit", submitRequest{Answers: answers}, &result,
		"Failed to submit quiz. Please check your connection and try again."); err != nil {
		return domain.SubmissionResult{}, err
	}
	return result, nil
}

// ListUserQuizzes fetches the caller's quizzes. Requires a credential.
func (c *Client) ListUserQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	if _, ok := c.tokens.Token(); !ok {
		return nil, domain.ErrAuthRequired
	}
	var quizzes []domain.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &quizzes,
		"Failed to fetch your quizzes. Please check your connection and try again."); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// doJSON performs one request/response cycle and normalizes every
// failure mode into *APIError. failMessage is surfaced when no
// response arrives at all.
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, respBody any, failMessage string) error {
	var bodyReader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if reqBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := c.tokens.Token(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &APIError{Message: failMessage}
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, 1<<20))
		return &APIError{
			Message: statusMessage(response.StatusCode, backendMessage(raw)),
			Status:  response.StatusCode,
		}
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
