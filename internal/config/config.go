package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds ledgerdeck's settings.
type Config struct {
	APIURL   string
	APIToken string
	PageSize int
	// PollInterval is zero when automatic refresh is off.
	PollInterval time.Duration
	LogDir       string
	LogLevel     string
	CacheSize    int
}

const (
	defaultConfigPath = "~/.config/ledgerdeck/config.toml"
	defaultLogDir     = "~/.local/state/ledgerdeck"
	defaultAPIURL     = "http://127.0.0.1:8080"
	defaultPageSize   = 10
	defaultLogLevel   = "info"
	defaultCacheSize  = 64
	maxPageSize       = 500
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		APIURL:    defaultAPIURL,
		PageSize:  defaultPageSize,
		LogDir:    mustExpand(defaultLogDir),
		LogLevel:  defaultLogLevel,
		CacheSize: defaultCacheSize,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL      string `toml:"api_url"`
		APIToken    string `toml:"api_token"`
		PageSize    int    `toml:"page_size"`
		PollSeconds int    `toml:"poll_seconds"`
		LogDir      string `toml:"log_dir"`
		LogLevel    string `toml:"log_level"`
		CacheSize   int    `toml:"cache_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)

	switch {
	case raw.PageSize < 0:
		return Config{}, fmt.Errorf("parse config: page_size must not be negative, got %d", raw.PageSize)
	case raw.PageSize > maxPageSize:
		cfg.PageSize = maxPageSize
	case raw.PageSize > 0:
		cfg.PageSize = raw.PageSize
	}

	if raw.PollSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: poll_seconds must not be negative, got %d", raw.PollSeconds)
	}
	cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if raw.CacheSize > 0 {
		cfg.CacheSize = raw.CacheSize
	}

	return cfg, nil
}

// LogPath returns the path of ledgerdeck's own log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/ledgerdeck.log")
	}
	return filepath.Join(c.LogDir, "ledgerdeck.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
