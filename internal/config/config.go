package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort is used when neither flag, PORT nor the config file set one.
const DefaultPort = "3000"

const defaultTriviaURL = "https://opentdb.com/api.php?amount=1&type=multiple"

type Config struct {
	Server struct {
		Bind            string `yaml:"bind"`
		Port            string `yaml:"port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Cookies struct {
		Secure bool   `yaml:"secure"`
		MaxAge string `yaml:"max_age"`
	} `yaml:"cookies"`
	Trivia struct {
		URL       string `yaml:"url"`
		Timeout   string `yaml:"timeout"`
		RateLimit int    `yaml:"rate_limit"`
	} `yaml:"trivia"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Key      string `yaml:"key"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Trivia.URL = defaultTriviaURL
	cfg.Trivia.Timeout = "10s"
	cfg.Server.ShutdownTimeout = "5s"
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error. LOG_LEVEL and LOG_FORMAT override the log section.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if cfg.Trivia.URL == "" {
		cfg.Trivia.URL = defaultTriviaURL
	}
	return cfg, nil
}

// ResolvePort applies flag > PORT env > config file > DefaultPort.
func (c Config) ResolvePort(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("PORT"); env != "" {
		return env
	}
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return DefaultPort
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
