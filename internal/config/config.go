package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	EOP    EOPConfig    `yaml:"eop"`
	Stream StreamConfig `yaml:"stream"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the HTTP listener settings. There is deliberately no
// write timeout: SSE streams are long-lived.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuthConfig holds the bearer-token settings. An empty token disables
// authentication entirely.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// EOPConfig points at the Earth-orientation bulletin source.
type EOPConfig struct {
	URL          string        `yaml:"url"`
	TTL          time.Duration `yaml:"ttl"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// StreamConfig bounds the SSE tick stream.
type StreamConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxPerIP     int           `yaml:"max_per_ip"`
}

// LogConfig selects the log verbosity: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
		},
		EOP: EOPConfig{
			TTL:          6 * time.Hour,
			FetchTimeout: 10 * time.Second,
		},
		Stream: StreamConfig{
			TickInterval: time.Second,
			MaxPerIP:     4,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path or
// a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.validate()
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.EOP.URL != "" {
		u, err := url.Parse(c.EOP.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("eop.url %q is not a valid http(s) URL", c.EOP.URL)
		}
	}
	if c.EOP.FetchTimeout <= 0 {
		return fmt.Errorf("eop.fetch_timeout must be positive")
	}
	if c.Stream.TickInterval < 100*time.Millisecond {
		return fmt.Errorf("stream.tick_interval must be at least 100ms")
	}
	if c.Stream.MaxPerIP < 1 {
		return fmt.Errorf("stream.max_per_ip must be at least 1")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	return nil
}

// LogLevel maps the configured level onto slog's scale.
func (c Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
