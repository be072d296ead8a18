package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Versioning VersioningConfig `yaml:"versioning"`
	Diff       DiffConfig       `yaml:"diff"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Request-Id,Retry-After,Content-Disposition"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitPerMinute bounds requests per caller on /api/v1; 0 disables it.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"600"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout is set as the session statement_timeout; 0 leaves the
	// server default. Ledger export and verify stream the whole table, so
	// keep it generous.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"60s"`
	ApplicationName  string        `yaml:"application_name"  env:"DATABASE_APPLICATION_NAME"  env-default:"research-ledger"`
}

// AuthConfig holds access token settings. Tokens are issued by an external
// identity provider (or auditctl in development) and only validated here.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"research-ledger"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LedgerConfig holds audit ledger settings. HashAlgorithm applies to new
// entries only; existing entries keep the algorithm they were sealed with.
type LedgerConfig struct {
	HashAlgorithm string `yaml:"hash_algorithm" env:"LEDGER_HASH_ALGORITHM" env-default:"sha256"`
	AppendRetries int    `yaml:"append_retries" env:"LEDGER_APPEND_RETRIES" env-default:"3"`
	LockKey       int64  `yaml:"lock_key"       env:"LEDGER_LOCK_KEY"       env-default:"7340021"`
}

// VersioningConfig holds version chain settings.
type VersioningConfig struct {
	MaxRetries      int `yaml:"max_retries"       env:"VERSIONING_MAX_RETRIES"       env-default:"3"`
	HistoryPageSize int `yaml:"history_page_size" env:"VERSIONING_HISTORY_PAGE_SIZE" env-default:"20"`
}

// DiffConfig holds comparison limits. MaxLines caps each side; MaxCells
// caps the LCS table, (from lines + 1) * (to lines + 1).
type DiffConfig struct {
	MaxLines     int `yaml:"max_lines"     env:"DIFF_MAX_LINES"     env-default:"5000"`
	MaxCells     int `yaml:"max_cells"     env:"DIFF_MAX_CELLS"     env-default:"4000000"`
	ContextLines int `yaml:"context_lines" env:"DIFF_CONTEXT_LINES" env-default:"3"`
	DigestLength int `yaml:"digest_length" env:"DIFF_DIGEST_LENGTH" env-default:"16"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
