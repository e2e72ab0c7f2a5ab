package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateUI(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if c.Timers.TickMillis < 10 {
		return errors.New("timers.tick_millis must be at least 10")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog.base_url %q must be an absolute URL", c.Catalog.BaseURL)
	}
	if c.Catalog.TimeoutSeconds < 0 {
		return errors.New("catalog.timeout_seconds must be 0 or positive")
	}
	if c.Catalog.CacheSize < 0 {
		return errors.New("catalog.cache_size must be 0 or positive")
	}
	if c.Catalog.CacheTTLSeconds < 0 {
		return errors.New("catalog.cache_ttl_seconds must be 0 or positive")
	}
	return nil
}

func (c *Config) validateUI() error {
	switch c.UI.DefaultTheme {
	case "light", "dark":
	default:
		return fmt.Errorf("ui.default_theme must be light or dark, got %q", c.UI.DefaultTheme)
	}
	if _, err := logger.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("ui.log_level: %w", err)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if !c.Notifications.Enabled || c.Notifications.NtfyTopic == "" {
		return nil
	}
	u, err := url.Parse(c.Notifications.NtfyTopic)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic %q must be a full topic URL", c.Notifications.NtfyTopic)
	}
	return nil
}
