package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Storage.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required for storage driver %q", DriverPostgres)
	}

	if !slices.Contains([]string{BusLocal, BusRedis, BusNATS}, c.Bus.Driver) {
		return fmt.Errorf("bus.driver must be one of local, redis, nats (got %q)", c.Bus.Driver)
	}
	if c.Bus.Driver == BusNATS && strings.TrimSpace(c.NATS.Subject) == "" {
		return fmt.Errorf("nats.subject is required for bus driver %q", BusNATS)
	}

	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if c.Gate.ResyncInterval < 0 {
		return fmt.Errorf("gate.resync_interval must be >= 0 (got %v)", c.Gate.ResyncInterval)
	}
	if c.Survey.DraftTTL <= 0 {
		return fmt.Errorf("survey.draft_ttl must be > 0 (got %v)", c.Survey.DraftTTL)
	}
	if c.Survey.SweepInterval <= 0 {
		return fmt.Errorf("survey.sweep_interval must be > 0 (got %v)", c.Survey.SweepInterval)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if !slices.Contains([]string{DriverMemory, DriverRedis, DriverPostgres}, s.Driver) {
		return fmt.Errorf("driver must be one of memory, redis, postgres (got %q)", s.Driver)
	}
	if s.Driver == DriverRedis && strings.TrimSpace(s.RedisNamespace) == "" {
		return fmt.Errorf("redis_namespace is required for the redis driver")
	}
	if s.ProfileRetentionDays <= 0 {
		return fmt.Errorf("profile_retention_days must be > 0 (got %d)", s.ProfileRetentionDays)
	}
	return nil
}

func (a *AuthConfig) validate() error {
	if a.ProfileTokenTTL <= 0 {
		return fmt.Errorf("profile_token_ttl must be > 0 (got %v)", a.ProfileTokenTTL)
	}
	if strings.TrimSpace(a.DemoEmail) == "" {
		return fmt.Errorf("demo_email is required")
	}
	if a.MinPasswordLength < 1 {
		return fmt.Errorf("min_password_length must be >= 1 (got %d)", a.MinPasswordLength)
	}
	if len(a.DemoPassword) < a.MinPasswordLength {
		return fmt.Errorf("demo_password is shorter than min_password_length")
	}
	if a.SimulatedDelay < 0 {
		return fmt.Errorf("simulated_delay must be >= 0 (got %v)", a.SimulatedDelay)
	}
	if a.PasswordHashCost < 4 || a.PasswordHashCost > 31 {
		return fmt.Errorf("password_hash_cost must be in [4, 31] (got %d)", a.PasswordHashCost)
	}
	return nil
}
