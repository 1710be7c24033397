package api

import "encoding/json"

// APIError is the single normalized error shape every call site sees.
// Message is always user-safe; Status is zero when no response was
// received at all.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// backendMessage extracts a human-readable field from a structured
// error body, checking message, error, then detail, or a bare JSON
// string. Returns "" when nothing safe can be extracted.
func backendMessage(body []byte) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch v := payload.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error", "detail"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	case string:
		return v
	}
	return ""
}

// statusMessage maps a status code to a user-facing message. Raw error
// bodies are never surfaced; only the extracted backend message is
// used, and only where the status allows it.
func statusMessage(status int, backend string) string {
	switch status {
	case 400:
		if backend != "" {
			return backend
		}
		return "Invalid request. Please check your input and try again."
	case 404:
		return "Quiz not found"
	case 429:
		return "Rate limit exceeded. Please wait a moment before trying again."
	case 500:
		return "Server error. Please try again later."
	default:
		if backend != "" {
			return backend
		}
		return "An error occurred. Please try again."
	}
}
