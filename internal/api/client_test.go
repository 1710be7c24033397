package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pagequiz/internal/domain"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func countingClient(t *testing.T, calls *int) *http.Client {
	t.Helper()
	return &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			*calls++
			return nil, errors.New("network should not be reached")
		}),
	}
}

func TestCreateQuizRejectsInvalidURLWithoutNetwork(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-url", "ftp://example.com/doc"} {
		calls := 0
		client := NewClient("http://example.test", countingClient(t, &calls), StaticToken("tok"))

		_, err := client.CreateQuiz(context.Background(), raw)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("url %q: expected ValidationError, got %v", raw, err)
		}
		if calls != 0 {
			t.Fatalf("url %q: expected no network calls, got %d", raw, calls)
		}
	}
}

func TestSchemeValidationMessage(t *testing.T) {
	err := ValidateSourceURL("ftp://example.com/doc")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Message != "URL must start with http:// or https://" {
		t.Fatalf("unexpected message %q", verr.Message)
	}
}

func TestCreateQuizRequiresToken(t *testing.T) {
	calls := 0
	client := NewClient("http://example.test", countingClient(t, &calls), StaticToken(""))

	_, err := client.CreateQuiz(context.Background(), "https://example.com/article")
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestSubmitAnswersRequiresToken(t *testing.T) {
	calls := 0
	client := NewClient("http://example.test", countingClient(t, &calls), StaticToken(""))

	_, err := client.SubmitAnswers(context.Background(), "q1", []int{0, 1})
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestCreateQuizSendsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/quizzes" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("authorization header = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("missing request id header")
		}
		var req CreateQuizRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if req.SourceURL != "https://example.com/article" {
			t.Fatalf("source_url = %q", req.SourceURL)
		}
		_ = json.NewEncoder(w).Encode(CreateQuizResponse{QuizID: "q1", Status: domain.StatusProcessing})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), StaticToken("tok"))
	resp, err := client.CreateQuiz(context.Background(), "  https://example.com/article  ")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if resp.QuizID != "q1" || resp.Status != domain.StatusProcessing {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestErrorNormalization(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"400 with backend message", 400, `{"message":"url unreachable"}`, "url unreachable"},
		{"400 without message", 400, `{}`, "Invalid request. Please check your input and try again."},
		{"404 ignores backend message", 404, `{"message":"nope"}`, "Quiz not found"},
		{"429 canned", 429, `{"error":"slow down"}`, "Rate limit exceeded. Please wait a moment before trying again."},
		{"500 canned", 500, `{"error":"stack trace here"}`, "Server error. Please try again later."},
		{"other uses error field", 418, `{"error":"teapot"}`, "teapot"},
		{"other uses detail field", 422, `{"detail":"missing answers"}`, "missing answers"},
		{"bare string body", 503, `"downstream offline"`, "downstream offline"},
		{"unparseable body", 502, `<html>bad gateway</html>`, "An error occurred. Please try again."},
		{"non-string message field", 502, `{"message":5}`, "An error occurred. Please try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, server.Client(), StaticToken("tok"))
			_, err := client.GetQuiz(context.Background(), "q1")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T (%v)", err, err)
			}
			if apiErr.Status != tc.status {
				t.Fatalf("status = %d, want %d", apiErr.Status, tc.status)
			}
			if apiErr.Message != tc.message {
				t.Fatalf("message = %q, want %q", apiErr.Message, tc.message)
			}
		})
	}
}

func TestTransportFailureSynthesizesMessage(t *testing.T) {
	client := NewClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	}, StaticToken("tok"))

	_, err := client.GetQuiz(context.Background(), "q1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("status = %d, want 0", apiErr.Status)
	}
	if apiErr.Message != "Failed to fetch quiz. Please check your connection and try again." {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestGenerateFromTopicsRejectsEmptySelection(t *testing.T) {
	calls := 0
	client := NewClient("http://example.test", countingClient(t, &calls), StaticToken("tok"))

	err := client.GenerateFromTopics(context.Background(), "q1", nil, domain.DifficultyMedium)
	if !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestGenerateFromTopicsDefaultsDifficulty(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), StaticToken("tok"))
	if err := client.GenerateFromTopics(context.Background(), "q1", []string{"t1", "t2"}, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got.Difficulty != domain.DifficultyMedium {
		t.Fatalf("difficulty = %q, want medium", got.Difficulty)
	}
	if len(got.TopicIDs) != 2 || got.TopicIDs[0] != "t1" {
		t.Fatalf("topic ids = %v", got.TopicIDs)
	}
}

func TestSubmitAnswersParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quizzes/q1/submit" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(req.Answers) != 2 || req.Answers[1] != 3 {
			t.Fatalf("answers = %v", req.Answers)
		}
		_ = json.NewEncoder(w).Encode(domain.SubmissionResult{
			Score:        1,
			CorrectCount: 1,
			Percentage:   50,
			Results: []domain.QuizResult{
				{QuestionID: 1, UserAnswer: 0, CorrectAnswer: 0, IsCorrect: true},
				{QuestionID: 2, UserAnswer: 3, CorrectAnswer: 2, IsCorrect: false},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), StaticToken("tok"))
	result, err := client.SubmitAnswers(context.Background(), "q1", []int{0, 3})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Percentage != 50 || result.CorrectCount != 1 || len(result.Results) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}
