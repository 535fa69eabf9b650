package apiclient

import (
	"fmt"
	"intranet/internal/types"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// StatusError is a non-2xx answer from the API. Detail holds the decoded
// "detail" message when the body carries one.
type StatusError struct {
	StatusCode int
	Body       string
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets callers match the status with the usual sentinels.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return types.ErrAlreadyExists
	case http.StatusNotFound:
		return types.ErrNotFound
	case http.StatusUnprocessableEntity:
		return types.ErrInvalidClientRecord
	default:
		return types.ErrUpstream
	}
}

func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{StatusCode: code, Body: strings.TrimSpace(string(body))}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return e
	}
	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		e.Detail = msg
		return e
	}
	var items []struct {
		Loc []string `json:"loc"`
		Msg string   `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(it.Loc, "."), it.Msg))
		}
		e.Detail = strings.Join(parts, "; ")
	}
	return e
}
