package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Bus      BusConfig      `yaml:"bus"`
	NATS     NATSConfig     `yaml:"nats"`
	Auth     AuthConfig     `yaml:"auth"`
	Gate     GateConfig     `yaml:"gate"`
	Survey   SurveyConfig   `yaml:"survey"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Profile-Token,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"                  env:"SERVER_HOST"                  env-default:"0.0.0.0"`
	Port               int           `yaml:"port"                  env:"SERVER_PORT"                  env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"          env:"SERVER_READ_TIMEOUT"          env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"         env:"SERVER_WRITE_TIMEOUT"         env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"          env:"SERVER_IDLE_TIMEOUT"          env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"      env:"SERVER_SHUTDOWN_TIMEOUT"      env-default:"10s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
	SSEHeartbeat       time.Duration `yaml:"sse_heartbeat"         env:"SERVER_SSE_HEARTBEAT"         env-default:"15s"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// StorageConfig selects the session store backend.
type StorageConfig struct {
	Driver               string `yaml:"driver"                 env:"STORAGE_DRIVER"                 env-default:"memory"`
	RedisNamespace       string `yaml:"redis_namespace"        env:"STORAGE_REDIS_NAMESPACE"        env-default:"mirrorme"`
	ProfileRetentionDays int    `yaml:"profile_retention_days" env:"STORAGE_PROFILE_RETENTION_DAYS" env-default:"90"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is required only when storage.driver is postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds Redis connection settings shared by the redis store
// backend and the redis broadcast bus.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"         env-default:"localhost:6379"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	Channel     string        `yaml:"channel"      env:"REDIS_CHANNEL"      env-default:"mirrorme:changes"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// Broadcast bus drivers.
const (
	BusLocal = "local"
	BusRedis = "redis"
	BusNATS  = "nats"
)

// BusConfig selects how store changes reach other instances.
type BusConfig struct {
	Driver string `yaml:"driver" env:"BUS_DRIVER" env-default:"local"`
}

// NATSConfig holds NATS settings for the nats broadcast bus.
type NATSConfig struct {
	URL     string `yaml:"url"     env:"NATS_URL"     env-default:"nats://localhost:4222"`
	Subject string `yaml:"subject" env:"NATS_SUBJECT" env-default:"mirrorme.changes"`
}

// AuthConfig holds profile token and mock login settings.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"          env:"AUTH_JWT_SECRET"          env-required:"true"`
	JWTIssuer         string        `yaml:"jwt_issuer"          env:"AUTH_JWT_ISSUER"          env-default:"mirrorme"`
	ProfileTokenTTL   time.Duration `yaml:"profile_token_ttl"   env:"AUTH_PROFILE_TOKEN_TTL"   env-default:"720h"`
	DemoEmail         string        `yaml:"demo_email"          env:"AUTH_DEMO_EMAIL"          env-default:"demo@mirrorme.com"`
	DemoPassword      string        `yaml:"demo_password"       env:"AUTH_DEMO_PASSWORD"       env-default:"demo123"`
	DemoDisplayName   string        `yaml:"demo_display_name"   env:"AUTH_DEMO_DISPLAY_NAME"   env-default:"Demo User"`
	SimulatedDelay    time.Duration `yaml:"simulated_delay"     env:"AUTH_SIMULATED_DELAY"     env-default:"1500ms"`
	MinPasswordLength int           `yaml:"min_password_length" env:"AUTH_MIN_PASSWORD_LENGTH" env-default:"6"`
	PasswordHashCost  int           `yaml:"password_hash_cost"  env:"AUTH_PASSWORD_HASH_COST"  env-default:"10"`
}

// GateConfig holds onboarding gate settings.
type GateConfig struct {
	// ResyncInterval re-evaluates watched profiles periodically; 0 disables it.
	ResyncInterval time.Duration `yaml:"resync_interval" env:"GATE_RESYNC_INTERVAL" env-default:"0s"`
}

// SurveyConfig holds onboarding survey draft settings.
type SurveyConfig struct {
	DraftTTL      time.Duration `yaml:"draft_ttl"      env:"SURVEY_DRAFT_TTL"      env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SURVEY_SWEEP_INTERVAL" env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
