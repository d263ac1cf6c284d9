package airtable

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a response body does not match the
// expected record shape.
var ErrMalformedResponse = errors.New("airtable: malformed response")

// APIError is a non-2xx answer from the Airtable API.
// Error() embeds Type and Message so callers can match on them.
type APIError struct {
	Status  int
	Type    string // e.g. NOT_FOUND, INVALID_PERMISSIONS
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airtable: %d %s", e.Status, e.Type)
	}
	return fmt.Sprintf("airtable: %d %s: %s", e.Status, e.Type, e.Message)
}

// errorEnvelope matches both error shapes Airtable uses:
// {"error": "NOT_FOUND"} and {"error": {"type": "...", "message": "..."}}.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// newAPIError builds an *APIError from a failed response body.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: string(body)}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		apiErr.Type = "HTTP_ERROR"
		apiErr.Message = string(body)
		return apiErr
	}

	var typ string
	if err := json.Unmarshal(env.Error, &typ); err == nil {
		apiErr.Type = typ
		return apiErr
	}

	var detail errorDetail
	if err := json.Unmarshal(env.Error, &detail); err == nil {
		apiErr.Type = detail.Type
		apiErr.Message = detail.Message
		return apiErr
	}

	apiErr.Type = "HTTP_ERROR"
	apiErr.Message = string(env.Error)
	return apiErr
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
