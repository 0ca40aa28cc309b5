package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// API modes understood by the gateway.
const (
	ModeMock = "mock"
	ModeReal = "real"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Backend  BackendConfig
	Mock     MockConfig
	Session  SessionConfig
	Activity ActivityConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// BackendConfig controls how the gateway reaches the remote REST backend.
type BackendConfig struct {
	Mode          string
	Enabled       bool
	URL           string
	Timeout       time.Duration
	DefaultTenant string
}

// MockConfig tunes the in-memory data store used as fallback.
type MockConfig struct {
	Latency time.Duration
	Jitter  time.Duration
	Seed    bool
}

// SessionConfig selects where console sessions are persisted.
type SessionConfig struct {
	Backend string
	TTL     time.Duration
}

// ActivityConfig toggles the Postgres-backed activity log.
type ActivityConfig struct {
	Enabled    bool
	Workers    int
	MaxRetries int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	mode := strings.ToLower(strings.TrimSpace(v.GetString("API_MODE")))
	if mode != ModeMock && mode != ModeReal {
		mode = ModeMock
	}
	cfg.Backend = BackendConfig{
		Mode:          mode,
		Enabled:       v.GetBool("API_ENABLED"),
		URL:           strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		Timeout:       parseDuration(v.GetString("BACKEND_TIMEOUT"), 10*time.Second),
		DefaultTenant: v.GetString("DEFAULT_TENANT"),
	}

	cfg.Mock = MockConfig{
		Latency: parseDuration(v.GetString("MOCK_LATENCY"), 300*time.Millisecond),
		Jitter:  parseDuration(v.GetString("MOCK_LATENCY_JITTER"), 0),
		Seed:    v.GetBool("MOCK_SEED"),
	}

	backend := strings.ToLower(v.GetString("SESSION_BACKEND"))
	if backend != SessionBackendRedis {
		backend = SessionBackendMemory
	}
	cfg.Session = SessionConfig{
		Backend: backend,
		TTL:     parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
	}

	cfg.Activity = ActivityConfig{
		Enabled:    v.GetBool("ENABLE_ACTIVITY_LOG"),
		Workers:    v.GetInt("ACTIVITY_WORKERS"),
		MaxRetries: v.GetInt("ACTIVITY_MAX_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "school_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("API_MODE", ModeMock)
	v.SetDefault("API_ENABLED", true)
	v.SetDefault("BACKEND_URL", "http://localhost:8000/api")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("DEFAULT_TENANT", "stmarys")

	v.SetDefault("MOCK_LATENCY", "300ms")
	v.SetDefault("MOCK_LATENCY_JITTER", "200ms")
	v.SetDefault("MOCK_SEED", true)

	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", "12h")

	v.SetDefault("ENABLE_ACTIVITY_LOG", false)
	v.SetDefault("ACTIVITY_WORKERS", 1)
	v.SetDefault("ACTIVITY_MAX_RETRIES", 3)
}

// isMissingFile reports a missing .env, which viper surfaces as an fs error
// when SetConfigFile is used instead of a search path.
func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
