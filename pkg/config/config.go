// Package config loads process configuration from the environment. A .env file
// in the working directory is read once before the first load; variables that
// are already set win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Selection store kinds.
const (
	SelectionMemory = "memory"
	SelectionFile   = "file"
	SelectionRedis  = "redis"
)

// Config is the shared configuration of the server and the CLI.
type Config struct {
	APIURL     string        `env:"API_URL"`
	APIToken   string        `env:"API_TOKEN"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"8s"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":9876"`
	BasePath   string `env:"BASE_PATH" envDefault:"/admin"`

	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	NumberLocale   string        `env:"NUMBER_LOCALE" envDefault:"en"`

	SelectionStore string `env:"SELECTION_STORE" envDefault:"file"`
	SelectionFile  string `env:"SELECTION_FILE"`
	RedisURL       string `env:"REDIS_URL"`

	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	EChartsAssetsHost string `env:"ECHARTS_ASSETS_HOST"`
	TemplatesDir      string `env:"TEMPLATES_DIR"`
}

var dotenvOnce sync.Once

func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills cfg from the environment.
func Load(cfg any) error {
	loadDotenv()
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// MustLoad is Load that panics, for use at startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// LoadConfig loads and validates Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := Load(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SelectionFile == "" {
		cfg.SelectionFile = DefaultSelectionFile()
	}
	return cfg, cfg.Validate()
}

// Validate reports missing or inconsistent settings.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIURL) == "" {
		errs = append(errs, errors.New("config: API_URL is required"))
	}
	switch c.SelectionStore {
	case SelectionMemory, SelectionFile:
	case SelectionRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("config: REDIS_URL is required when SELECTION_STORE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown SELECTION_STORE %q", c.SelectionStore))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("config: API_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// DefaultSelectionFile is the per-user selection file.
func DefaultSelectionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "l10n-dashboard", "selection.yaml")
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
