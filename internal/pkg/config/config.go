package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/spf13/viper"
)

// Planner modes.
const (
	PlannerModeGemini  = "gemini"
	PlannerModeBackend = "backend"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// Enabled reports whether interaction logs should be persisted.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type PlannerConfig struct {
	Mode       string
	BackendURL string
	Timeout    time.Duration
	Gemini     GeminiConfig
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
	// Ephemeral is set when no SESSION_SECRET was given and a random key was
	// generated; sessions do not survive a restart.
	Ephemeral bool
}

type ObservabilityConfig struct {
	ServiceName  string
	MetricsAddr  string
	PprofAddr    string
	OTLPEndpoint string
	LogLevel     string
}

type APIConfig struct {
	RateLimit      float64 // requests per second per client
	RateBurst      int
	AllowedOrigins []string // empty allows any origin
}

type Config struct {
	Repositories  RepositoriesConfig
	Planner       PlannerConfig
	Session       SessionConfig
	Observability ObservabilityConfig
	API           APIConfig
	ServerPort    string
}

// Load reads configuration from the environment. godotenv has usually
// populated it from .env by the time this runs.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// Both names are accepted for the key and the backend URL.
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "API_KEY")
	_ = v.BindEnv("planner_api_url", "PLANNER_API_URL", "VITE_API_URL")

	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     v.GetString("postgres_host"),
				Port:     v.GetString("postgres_port"),
				DB:       v.GetString("postgres_db"),
				Username: v.GetString("postgres_user"),
				Password: v.GetString("postgres_password"),
				SSLMode:  v.GetString("postgres_sslmode"),
				MaxConns: v.GetInt32("postgres_max_conns"),
				MinConns: v.GetInt32("postgres_min_conns"),
			},
		},
		Planner: PlannerConfig{
			Mode:       strings.ToLower(strings.TrimSpace(v.GetString("planner_mode"))),
			BackendURL: strings.TrimRight(v.GetString("planner_api_url"), "/"),
			Timeout:    v.GetDuration("planner_timeout"),
			Gemini: GeminiConfig{
				APIKey: v.GetString("gemini_api_key"),
				Model:  v.GetString("gemini_model"),
			},
		},
		Session: SessionConfig{
			Secret: v.GetString("session_secret"),
			TTL:    v.GetDuration("session_ttl"),
		},
		Observability: ObservabilityConfig{
			ServiceName:  v.GetString("otel_service_name"),
			MetricsAddr:  v.GetString("metrics_addr"),
			PprofAddr:    v.GetString("pprof_addr"),
			OTLPEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
			LogLevel:     v.GetString("log_level"),
		},
		API: APIConfig{
			RateLimit:      v.GetFloat64("api_rate_limit"),
			RateBurst:      v.GetInt("api_rate_burst"),
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		ServerPort: v.GetString("server_port"),
	}

	if cfg.Session.Secret == "" {
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("failed to generate a session key; set SESSION_SECRET")
		}
		cfg.Session.Secret = hex.EncodeToString(key)
		cfg.Session.Ephemeral = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("planner_mode", PlannerModeGemini)
	v.SetDefault("planner_api_url", "http://localhost:8080")
	v.SetDefault("planner_timeout", 90*time.Second)
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("otel_service_name", "trip-planner")
	v.SetDefault("metrics_addr", ":9092")
	v.SetDefault("pprof_addr", ":6060")
	v.SetDefault("otel_exporter_otlp_endpoint", "otel-collector:4318")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_rate_limit", 0.5)
	v.SetDefault("api_rate_burst", 3)
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_db", "trip_planner")
	v.SetDefault("postgres_user", "postgres")
	v.SetDefault("postgres_sslmode", "disable")
	v.SetDefault("postgres_max_conns", 10)
	v.SetDefault("postgres_min_conns", 1)
}

// splitList parses a comma or space separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

// Validate checks the combinations Load cannot default away.
func (c *Config) Validate() error {
	switch c.Planner.Mode {
	case PlannerModeGemini:
		if c.Planner.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable is required when PLANNER_MODE=%s", PlannerModeGemini)
		}
	case PlannerModeBackend:
		u, err := url.Parse(c.Planner.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PLANNER_API_URL %q is not an absolute URL", c.Planner.BackendURL)
		}
	default:
		return fmt.Errorf("unknown PLANNER_MODE %q (want %s or %s)", c.Planner.Mode, PlannerModeGemini, PlannerModeBackend)
	}

	if c.Repositories.Postgres.Enabled() && c.Repositories.Postgres.Password == "" {
		return fmt.Errorf("POSTGRES_PASSWORD environment variable is required when POSTGRES_HOST is set")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// GeminiEnabled reports whether a direct-model planner can be built. The
// JSON API needs one even when the UI proxies to a backend.
func (c *Config) GeminiEnabled() bool {
	return c.Planner.Gemini.APIKey != ""
}
