package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolves one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom fills a Config from lookup, applies defaults and validates the
// result. Every missing or unparsable variable is reported in one error.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	var problems []string
	fill(reflect.ValueOf(cfg).Elem(), lookup, &problems)
	if len(problems) > 0 {
		return nil, fmt.Errorf("config load:\n  - %s", strings.Join(problems, "\n  - "))
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// fill walks the section structs of v and sets every field carrying an env
// tag. The env name wins over envAlt; blank values count as unset.
func fill(v reflect.Value, lookup LookupFunc, problems *[]string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field, fv := t.Field(i), v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			fill(fv, lookup, problems)
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw := firstSet(lookup, name, field.Tag.Get("envAlt"))
		if raw == "" {
			if field.Tag.Get("required") == "true" {
				*problems = append(*problems, name+" is required")
				continue
			}
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := assign(fv, raw); err != nil {
			*problems = append(*problems, fmt.Sprintf("%s=%q: %v", name, raw, err))
		}
	}
}

func firstSet(lookup LookupFunc, names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v, ok := lookup(n); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var durationType = reflect.TypeOf(time.Duration(0))

// assign parses raw into fv. Supported kinds are the ones Config uses:
// string, int, int64, time.Duration, bool and comma-separated []string.
func assign(fv reflect.Value, raw string) error {
	switch {
	case fv.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("not a duration")
		}
		fv.SetInt(int64(d))
	case fv.Kind() == reflect.String:
		fv.SetString(raw)
	case fv.Kind() == reflect.Int, fv.Kind() == reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer")
		}
		fv.SetInt(n)
	case fv.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean")
		}
		fv.SetBool(b)
	case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String:
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		fv.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Airtable validation
	if c.Airtable.BaseID == "" {
		errs = append(errs, "AIRTABLE_BASE_ID is required")
	}
	if c.Airtable.Token == "" {
		errs = append(errs, "AIRTABLE_ACCESS_TOKEN is required")
	}
	if c.Airtable.GamesTable == "" {
		errs = append(errs, "AIRTABLE_TABLE_ID is required")
	}
	if c.Airtable.SponsorsTable == "" {
		errs = append(errs, "AIRTABLE_SPONSORS_TABLE must not be empty")
	}
	if c.Airtable.Timeout <= 0 {
		errs = append(errs, "AIRTABLE_TIMEOUT must be positive")
	}

	// Store validation
	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory:
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when STORE_BACKEND=postgres")
		}
		if c.Store.MaxConns < c.Store.MinConns {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
				c.Store.MaxConns, c.Store.MinConns))
		}
		if c.Store.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Store.MinConns < 0 {
			errs = append(errs, "DB_MIN_CONNS must be non-negative")
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required when STORE_BACKEND=sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND (%q) must be one of: memory, postgres, sqlite", c.Store.Backend))
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Import validation
	if c.Import.MaxFileSize <= 0 {
		errs = append(errs, "IMPORT_MAX_FILE_SIZE must be positive")
	}
	if c.Import.MaxConcurrent <= 0 {
		errs = append(errs, "IMPORT_MAX_CONCURRENT must be positive")
	}
	if c.Import.MaxWaitTime <= 0 {
		errs = append(errs, "IMPORT_MAX_WAIT_TIME must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.Rate.Enabled && c.Rate.ImportLimit <= 0 {
		errs = append(errs, "RATE_LIMIT_IMPORT must be positive when rate limiting is enabled")
	}

	// Maintenance validation
	if c.Maintenance.RefreshInterval < 0 {
		errs = append(errs, "REFRESH_INTERVAL must be non-negative")
	}
	if c.Maintenance.AuditRetention < 0 {
		errs = append(errs, "AUDIT_RETENTION must be non-negative")
	}
	if c.Maintenance.PruneInterval <= 0 {
		errs = append(errs, "AUDIT_PRUNE_INTERVAL must be positive")
	}

	// Security validation
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Tokens and database URLs are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Airtable: {BaseID: %q, Token: [MASKED], SponsorsTable: %q, GamesTable: %q}, ",
		c.Airtable.BaseID, c.Airtable.SponsorsTable, c.Airtable.GamesTable))
	b.WriteString(fmt.Sprintf("Store: {Backend: %q, DatabaseURL: [MASKED], SQLitePath: %q}, ",
		c.Store.Backend, c.Store.SQLitePath))
	b.WriteString(fmt.Sprintf("Import: {MaxFileSize: %d, MaxConcurrent: %d}, ",
		c.Import.MaxFileSize, c.Import.MaxConcurrent))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Events: {NATS: %v}, ", c.Events.NATSURL != ""))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
