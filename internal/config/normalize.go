package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment overrides.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
	EnvNtfyTopic         = "RECIPEBOX_NTFY_TOPIC"
	EnvDataDir           = "RECIPEBOX_DATA_DIR"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	if c.Timers.TickMillis <= 0 {
		c.Timers.TickMillis = defaultTickMillis
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	c.UI.DefaultTheme = strings.ToLower(strings.TrimSpace(c.UI.DefaultTheme))
	if c.UI.DefaultTheme == "" {
		c.UI.DefaultTheme = defaultTheme
	}
	if c.UI.RecommendationCount <= 0 {
		c.UI.RecommendationCount = defaultRecommendationCount
	}
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvDataDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = value
	}
	if value, ok := os.LookupEnv(EnvNtfyTopic); ok && strings.TrimSpace(value) != "" {
		c.Notifications.NtfyTopic = value
	}
	if c.Speech.Key == "" {
		c.Speech.Key = os.Getenv(EnvAzureSpeechKey)
	}
	if c.Speech.Region == "" {
		c.Speech.Region = os.Getenv(EnvAzureSpeechRegion)
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	return c.normalizeDerived()
}

// normalizeDerived fills paths that default to locations inside the data
// directory. Call it again after the data directory changes.
func (c *Config) normalizeDerived() error {
	var err error
	switch strings.TrimSpace(c.Paths.LogFile) {
	case "":
		c.Paths.LogFile = filepath.Join(c.Paths.DataDir, logFileName)
	case "stderr", "-":
		c.Paths.LogFile = "stderr"
	default:
		if c.Paths.LogFile, err = expandPath(c.Paths.LogFile); err != nil {
			return fmt.Errorf("paths.log_file: %w", err)
		}
	}
	if strings.TrimSpace(c.Speech.CacheDir) == "" {
		c.Speech.CacheDir = filepath.Join(c.Paths.DataDir, speechCacheDirName)
	}
	if c.Speech.CacheDir, err = expandPath(c.Speech.CacheDir); err != nil {
		return fmt.Errorf("speech.cache_dir: %w", err)
	}
	return nil
}

// SetDataDir moves the data directory, re-deriving paths that were not
// set explicitly.
func (c *Config) SetDataDir(dir string) error {
	oldDerivedLog := filepath.Join(c.Paths.DataDir, logFileName)
	oldDerivedCache := filepath.Join(c.Paths.DataDir, speechCacheDirName)

	expanded, err := expandPath(dir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	c.Paths.DataDir = expanded
	if c.Paths.LogFile == oldDerivedLog {
		c.Paths.LogFile = ""
	}
	if c.Speech.CacheDir == oldDerivedCache {
		c.Speech.CacheDir = ""
	}
	return c.normalizeDerived()
}
