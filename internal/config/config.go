// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server      ServerConfig
	Airtable    AirtableConfig
	Store       StoreConfig
	Import      ImportConfig
	Rate        RateLimitConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	Events      EventsConfig
	Maintenance MaintenanceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// AirtableConfig holds the remote table settings. The NEXT_PUBLIC_ names
// are accepted so an existing .env keeps working.
type AirtableConfig struct {
	BaseID string `env:"AIRTABLE_BASE_ID" envAlt:"NEXT_PUBLIC_AIRTABLE_BASE_ID" required:"true"`
	Token  string `env:"AIRTABLE_ACCESS_TOKEN" envAlt:"NEXT_PUBLIC_AIRTABLE_ACCESS_TOKEN" required:"true"`

	// BaseURL is the API root (default: https://api.airtable.com/v0)
	BaseURL string `env:"AIRTABLE_BASE_URL" default:"https://api.airtable.com/v0"`

	// SponsorsTable is the sponsors table id
	SponsorsTable string `env:"AIRTABLE_SPONSORS_TABLE" default:"tblTfxLEmoMgMfZAR"`

	// GamesTable is the games table id; Init cannot load without it
	GamesTable string `env:"AIRTABLE_TABLE_ID" envAlt:"NEXT_PUBLIC_AIRTABLE_TABLE_ID" required:"true"`

	// Timeout bounds every remote call (default: 30s)
	Timeout time.Duration `env:"AIRTABLE_TIMEOUT" default:"30s"`
}

// Persistence backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// StoreConfig selects where offerings, bookings, categories and the audit
// log are kept.
type StoreConfig struct {
	// Backend is memory, postgres or sqlite (default: memory)
	Backend string `env:"STORE_BACKEND" default:"memory"`

	// DatabaseURL is the PostgreSQL connection string for the postgres backend
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string `env:"SQLITE_PATH" default:"data/sponsordesk.db"`

	// MaxConns is the maximum number of connections in the pool (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 4)
	MinConns int `env:"DB_MIN_CONNS" default:"4"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ImportConfig holds sponsor CSV import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the maximum number of parallel imports (default: 2)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long to wait for an import slot (default: 30s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ImportLimit is requests per minute for import endpoints (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects /api routes with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// EventsConfig holds domain event publishing settings. An empty NATSURL
// disables publishing.
type EventsConfig struct {
	NATSURL string `env:"NATS_URL"`

	// SubjectPrefix is the first subject token (default: sponsordesk)
	SubjectPrefix string `env:"EVENTS_SUBJECT_PREFIX" default:"sponsordesk"`
}

// MaintenanceConfig holds background job settings.
type MaintenanceConfig struct {
	// RefreshInterval reloads remote data periodically; 0 disables (default: 0s)
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" default:"0s"`

	// AuditRetention is how long audit entries are kept (default: 2160h, 90 days)
	AuditRetention time.Duration `env:"AUDIT_RETENTION" default:"2160h"`

	// PruneInterval is how often old audit entries are removed (default: 24h)
	PruneInterval time.Duration `env:"AUDIT_PRUNE_INTERVAL" default:"24h"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
