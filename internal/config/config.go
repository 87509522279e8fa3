package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	KBPrefix   string   `env:"NEREVAL_KB_PREFIX" envDefault:"Q"`
	Benchmarks []string `env:"NEREVAL_BENCHMARKS" envSeparator:"," envDefault:"clueweb,manual,conll"`
	LogLevel   string   `env:"NEREVAL_LOG_LEVEL" envDefault:"info"`
	LogPretty  bool     `env:"NEREVAL_LOG_PRETTY" envDefault:"true"`
	Progress   bool     `env:"NEREVAL_PROGRESS" envDefault:"true"`
}

var ErrEmptyKBPrefix = errors.New("knowledge base prefix must not be empty")

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.KBPrefix == "" {
		return ErrEmptyKBPrefix
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// NewLogger builds the logger described by the config, writing to stderr.
func (c *Config) NewLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if c.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Str("app", "nereval").Logger()
}
