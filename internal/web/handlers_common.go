package web

// handlers_common.go holds request parsing helpers shared by the handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/SponsorDesk/internal/core"
)

// maxJSONBody caps JSON request bodies (1MB).
const maxJSONBody = 1 << 20

// auditPageSize is how many audit entries one page shows.
const auditPageSize = 50

// decodeJSON decodes the request body into v. Malformed bodies are reported
// as bad requests; oversized ones as *http.MaxBytesError.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return badRequest(errors.New("request body is empty"))
		}
		return badRequest(fmt.Errorf("invalid JSON body: %w", err))
	}
	return nil
}

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// pathParam returns the unescaped chi URL parameter.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseOptionalDay parses a calendar day; blank input yields the zero time
// so the booking rules can report the missing value.
func parseOptionalDay(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := core.ParseDay(s)
	if err != nil {
		return time.Time{}, core.ValidationError{Field: field, Message: err.Error()}
	}
	return t, nil
}
