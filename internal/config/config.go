// Package config layers paktui's configuration: built-in defaults, then an
// optional YAML config file, then a .env file, then PAKTUI_* environment
// variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ChatBackend selects which conversation contract the assistant screen
// speaks.
type ChatBackend string

const (
	BackendAgent  ChatBackend = "agent"
	BackendLegacy ChatBackend = "legacy"
)

func (b ChatBackend) IsValid() bool {
	return b == BackendAgent || b == BackendLegacy
}

type Config struct {
	APIURL         string        `yaml:"api_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ChatBackend    ChatBackend   `yaml:"chat_backend"`
	HistoryLimit   int           `yaml:"history_limit"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		ChatBackend:    BackendAgent,
		HistoryLimit:   50,
		LogFile:        defaultLogPath(),
		LogLevel:       "info",
	}
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "paktui", "paktui.log")
}

// Load builds the effective configuration. path may be empty, in which case
// only the default file location is tried; a missing file is not an error,
// a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "paktui", "config.yaml")
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()
	cfg = fromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("PAKTUI_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v, ok := getEnvInt("PAKTUI_REQUEST_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := strings.TrimSpace(os.Getenv("PAKTUI_CHAT_BACKEND")); v != "" {
		cfg.ChatBackend = ChatBackend(strings.ToLower(v))
	}
	if v, ok := getEnvInt("PAKTUI_HISTORY_LIMIT"); ok && v > 0 {
		cfg.HistoryLimit = v
	}
	if v := strings.TrimSpace(os.Getenv("PAKTUI_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("PAKTUI_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("config: api_url is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("config: api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if !c.ChatBackend.IsValid() {
		return fmt.Errorf("config: chat_backend must be %q or %q, got %q", BackendAgent, BackendLegacy, c.ChatBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("config: history_limit must be positive")
	}
	return nil
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
