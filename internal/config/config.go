// Package config loads recipebox settings from TOML, .env and the
// environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths holds filesystem locations.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogFile   string `toml:"log_file"`
	ExportDir string `toml:"export_dir"`
}

// Catalog configures the recipe service client.
type Catalog struct {
	BaseURL         string `toml:"base_url"`
	TimeoutSeconds  int    `toml:"timeout_seconds"` // 0 waits indefinitely
	CacheSize       int    `toml:"cache_size"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	Offline         bool   `toml:"offline"`
}

// Timers configures countdown timers.
type Timers struct {
	TickMillis int  `toml:"tick_millis"`
	AlertSound bool `toml:"alert_sound"`
}

// Notifications configures push notifications. Enabled is the user's
// standing permission; nothing is pushed without it.
type Notifications struct {
	Enabled        bool   `toml:"enabled"`
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Speech configures text-to-speech.
type Speech struct {
	Enabled  bool   `toml:"enabled"`
	CacheDir string `toml:"cache_dir"`
	Voice    string `toml:"voice"`
	Key      string `toml:"key"`
	Region   string `toml:"region"`
}

// UI configures presentation defaults.
type UI struct {
	DefaultTheme        string `toml:"default_theme"`
	RecommendationCount int    `toml:"recommendation_count"`
	LogLevel            string `toml:"log_level"`
}

// Config encapsulates all configuration values for recipebox.
//
// Sections:
//   - Paths: data, log and export locations
//   - Catalog: recipe service endpoint, timeout and lookup cache
//   - Timers: tick interval and alert tone
//   - Notifications: ntfy push settings
//   - Speech: Azure TTS credentials and audio cache
//   - UI: theme, recommendation count and log level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Catalog       Catalog       `toml:"catalog"`
	Timers        Timers        `toml:"timers"`
	Notifications Notifications `toml:"notifications"`
	Speech        Speech        `toml:"speech"`
	UI            UI            `toml:"ui"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/recipebox/config.toml")
}

// Load reads .env, locates and parses the configuration file, applies
// environment overrides, and validates the result. It returns the config,
// the resolved path, and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	loadDotEnv()
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv reads ./.env when present. Existing variables win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("recipebox.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the data directory.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Speech.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SpeechConfigured reports whether Azure credentials are present.
func (c *Config) SpeechConfigured() bool {
	return c.Speech.Enabled && c.Speech.Key != "" && c.Speech.Region != ""
}

// NtfyConfigured reports whether pushes should be sent.
func (c *Config) NtfyConfigured() bool {
	return c.Notifications.Enabled && c.Notifications.NtfyTopic != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
