package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrForbidden    = errors.New("account locked or not activated")
	ErrNotFound     = errors.New("not found")
)

const maxErrorBody = 64 << 10

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Is maps status codes onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// decodeError reads the backend's error body. It understands
// {"error": "..."}, {"message": "..."}, {"detail": "..."} and serializer
// validation maps like {"email": ["already exists"]}.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		if len(apiErr.Message) > 200 {
			apiErr.Message = apiErr.Message[:200]
		}
		return apiErr
	}

	for _, key := range []string{"error", "message", "detail"} {
		if s := rawString(body[key]); s != "" {
			apiErr.Message = s
			return apiErr
		}
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var msgs []string
		if err := json.Unmarshal(body[k], &msgs); err == nil && len(msgs) > 0 {
			parts = append(parts, k+": "+strings.Join(msgs, ", "))
		} else if s := rawString(body[k]); s != "" {
			parts = append(parts, k+": "+s)
		}
	}
	apiErr.Message = strings.Join(parts, "; ")
	return apiErr
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
