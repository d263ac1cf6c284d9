package web

// errors.go provides unified error response handling for the web layer.
//
// The error flow:
//  1. Handler encounters an error and calls s.fail (or respondError with an
//     explicit status)
//  2. The error is classified: validation problems become 422, unknown
//     records 404, remote failures 502, a full import limiter 503
//  3. The technical error is logged with the request id
//  4. The client gets {error, message, action, code} as JSON, an HTMX
//     fragment, or plain text depending on the request

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
	"github.com/JonMunkholm/SponsorDesk/internal/store"
	"github.com/JonMunkholm/SponsorDesk/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Action  string                 `json:"action,omitempty"`
	Code    string                 `json:"code"`
	Fields  []core.ValidationError `json:"fields,omitempty"`
	Missing []string               `json:"missing,omitempty"`
}

// badRequestError marks malformed request input (bad JSON, missing file).
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &badRequestError{err: err}
}

// errNoFile is returned when an upload has no "file" part.
var errNoFile = errors.New("no file provided")

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var (
		bad       *badRequestError
		tooLarge  *http.MaxBytesError
		headerErr *core.HeaderError
		remote    *store.RemoteError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.As(err, &headerErr),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrInvalidCSV),
		store.IsValidation(err):
		return http.StatusUnprocessableEntity
	case store.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &remote):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail responds with the status statusFor picks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.respondError(w, r, err, statusFor(err))
}

// respondError logs the technical error and returns a user-friendly response
// based on the request type (HTMX, JSON, or HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	resp := errorResponse(err, statusCode)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", resp.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusCode)
		if err := templates.ErrorAlert(resp.Message, resp.Action, resp.Code).Render(r.Context(), w); err != nil {
			slog.Error("render error alert", "error", err)
		}
	case wantsJSON(r):
		writeJSON(w, statusCode, resp)
	default:
		http.Error(w, resp.Message+" ("+resp.Code+")", statusCode)
	}
}

// errorResponse builds the client-facing body. Client errors echo the error
// text; server errors only carry the mapped message.
func errorResponse(err error, statusCode int) ErrorResponse {
	msg := core.MapError(err)
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	if statusCode < 500 {
		resp.Error = err.Error()
	}

	var (
		ve        core.ValidationError
		headerErr *core.HeaderError
		remote    *store.RemoteError
	)
	switch {
	case errors.As(err, &ve):
		resp.Message = ve.Message
		resp.Action = "Correct the field and submit again"
		resp.Code = "VAL003"
		resp.Fields = []core.ValidationError{ve}
	case errors.As(err, &headerErr):
		resp.Missing = headerErr.Missing
	case errors.As(err, &remote):
		mapped := core.MapError(remote.Err)
		resp.Error = remote.Notice
		resp.Message = remote.Notice
		resp.Action = mapped.Action
		resp.Code = mapped.Code
	}
	return resp
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
