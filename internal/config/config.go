package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Backend is one of remote, postgres or memory.
	Backend    string
	Server     ServerConfig
	Remote     RemoteConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Allocator  AllocatorConfig
	Submission SubmissionConfig
	Alerts     AlertsConfig
	Log        LogConfig
}

type ServerConfig struct {
	Addr          string
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	RateBurst     int           `mapstructure:"rate_burst"`
}

// RemoteConfig points at the inventory REST API that owns the durable state.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AllocatorConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	FallbackFloor int64         `mapstructure:"fallback_floor"`
}

type SubmissionConfig struct {
	// Mode is one of sequential, saga or atomic.
	Mode         string
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	GuardTTL     time.Duration `mapstructure:"guard_ttl"`
}

type AlertsConfig struct {
	From            string
	To              string
	SMTPServer      string `mapstructure:"smtp_server"`
	SMTPPort        string `mapstructure:"smtp_port"`
	SMTPUser        string `mapstructure:"smtp_user"`
	SMTPPassword    string `mapstructure:"smtp_password"`
	SMTPAuthDisable bool   `mapstructure:"smtp_auth_disabled"`
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "remote")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.jwt_secret", "super-secret-key")
	v.SetDefault("server.token_ttl", 15*time.Minute)
	v.SetDefault("server.rate_per_second", 5.0)
	v.SetDefault("server.rate_burst", 10)

	v.SetDefault("remote.base_url", "http://localhost:9191/invent")
	v.SetDefault("remote.timeout", 5*time.Second)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("allocator.timeout", 2*time.Second)
	v.SetDefault("allocator.fallback_floor", 1000)

	v.SetDefault("submission.mode", "sequential")
	v.SetDefault("submission.write_timeout", 5*time.Second)
	v.SetDefault("submission.guard_ttl", 30*time.Second)

	v.SetDefault("alerts.from", "")
	v.SetDefault("alerts.to", "")
	v.SetDefault("alerts.smtp_server", "")
	v.SetDefault("alerts.smtp_port", "587")
	v.SetDefault("alerts.smtp_user", "")
	v.SetDefault("alerts.smtp_password", "")
	v.SetDefault("alerts.smtp_auth_disabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads an optional .env file and a config file, then lets environment
// variables override everything (SERVER_ADDR, REMOTE_BASE_URL, DATABASE_URL, ...).
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case "remote", "postgres", "memory":
	default:
		return fmt.Errorf("backend must be remote, postgres or memory, got %q", c.Backend)
	}
	if c.Backend == "postgres" && c.Database.URL == "" {
		return fmt.Errorf("database.url is required for the postgres backend")
	}
	switch c.Submission.Mode {
	case "sequential", "saga", "atomic":
	default:
		return fmt.Errorf("submission.mode must be sequential, saga or atomic, got %q", c.Submission.Mode)
	}
	if c.Allocator.FallbackFloor <= 0 {
		return fmt.Errorf("allocator.fallback_floor must be positive")
	}
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required")
	}
	return nil
}
