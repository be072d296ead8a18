package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/research-ledger/internal/contenthash"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Ledger.validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if err := c.Versioning.validate(); err != nil {
		return fmt.Errorf("versioning: %w", err)
	}
	if err := c.Diff.validate(); err != nil {
		return fmt.Errorf("diff: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (d DatabaseConfig) validate() error {
	if d.MaxConns < 1 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be between 0 and max_conns (got %d, max %d)", d.MinConns, d.MaxConns)
	}
	if d.StatementTimeout < 0 {
		return fmt.Errorf("statement_timeout must be >= 0 (got %s)", d.StatementTimeout)
	}
	return nil
}

func (l LedgerConfig) validate() error {
	if _, err := contenthash.ParseAlgorithm(l.HashAlgorithm); err != nil {
		return fmt.Errorf("hash_algorithm: %w", err)
	}
	if l.AppendRetries < 1 || l.AppendRetries > 10 {
		return fmt.Errorf("append_retries must be between 1 and 10 (got %d)", l.AppendRetries)
	}
	return nil
}

// Algorithm returns the parsed hash algorithm. Call after Validate.
func (l LedgerConfig) Algorithm() contenthash.Algorithm {
	alg, err := contenthash.ParseAlgorithm(l.HashAlgorithm)
	if err != nil {
		return contenthash.Default
	}
	return alg
}

func (v VersioningConfig) validate() error {
	if v.MaxRetries < 1 || v.MaxRetries > 10 {
		return fmt.Errorf("max_retries must be between 1 and 10 (got %d)", v.MaxRetries)
	}
	if v.HistoryPageSize < 1 || v.HistoryPageSize > 200 {
		return fmt.Errorf("history_page_size must be between 1 and 200 (got %d)", v.HistoryPageSize)
	}
	return nil
}

func (d DiffConfig) validate() error {
	if d.MaxLines < 1 {
		return fmt.Errorf("max_lines must be > 0 (got %d)", d.MaxLines)
	}
	if d.MaxCells < 1 {
		return fmt.Errorf("max_cells must be > 0 (got %d)", d.MaxCells)
	}
	if d.ContextLines < 0 {
		return fmt.Errorf("context_lines must be >= 0 (got %d)", d.ContextLines)
	}
	if d.DigestLength < 8 || d.DigestLength > 64 {
		return fmt.Errorf("digest_length must be between 8 and 64 (got %d)", d.DigestLength)
	}
	return nil
}
