package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/SponsorDesk/internal/config"
)

// Auth error codes returned in the JSON body.
const (
	CodeMissingKey = "AUTH_MISSING_KEY"
	CodeInvalidKey = "AUTH_INVALID_KEY"
)

// APIKeyAuth validates the X-API-Key header against cfg.APIKeys.
// If RequireAPIKey is false, all requests pass through.
// If RequireAPIKey is true but no keys are configured, all requests are rejected.
func APIKeyAuth(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.RequireAPIKey {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				slog.Warn("auth: missing API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				writeJSONError(w, http.StatusUnauthorized, errorBody{
					Error:   "missing API key",
					Message: "Missing API key",
					Action:  "Send the X-API-Key header",
					Code:    CodeMissingKey,
				})
				return
			}

			if !isValidAPIKey(apiKey, cfg.APIKeys) {
				slog.Warn("auth: invalid API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				writeJSONError(w, http.StatusForbidden, errorBody{
					Error:   "invalid API key",
					Message: "Invalid API key",
					Action:  "Check the configured API keys",
					Code:    CodeInvalidKey,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isValidAPIKey compares key against every configured key in constant time.
func isValidAPIKey(key string, validKeys []string) bool {
	valid := 0
	for _, validKey := range validKeys {
		valid |= subtle.ConstantTimeCompare([]byte(key), []byte(validKey))
	}
	return valid == 1
}

// errorBody has the same shape as web.ErrorResponse.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func writeJSONError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
