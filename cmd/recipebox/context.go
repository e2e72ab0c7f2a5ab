package main

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/catalog"
	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

type globalFlags struct {
	config    string
	verbose   bool
	quiet     bool
	logFile   string
	dataDir   string
	noSound   bool
	noSpeech  bool
	offline   bool
	ephemeral bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the config once and layers the command-line flags on
// top of it.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyFlags(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlags(cfg *config.Config) error {
	f := c.flags
	if dir := strings.TrimSpace(f.dataDir); dir != "" {
		if err := cfg.SetDataDir(dir); err != nil {
			return fmt.Errorf("data dir: %w", err)
		}
	}
	switch lf := strings.TrimSpace(f.logFile); lf {
	case "":
	case "stderr", "-":
		cfg.Paths.LogFile = "stderr"
	default:
		expanded, err := config.ExpandPath(lf)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		cfg.Paths.LogFile = expanded
	}
	if f.offline {
		cfg.Catalog.Offline = true
	}
	if f.noSound {
		cfg.Timers.AlertSound = false
	}
	if f.noSpeech {
		cfg.Speech.Enabled = false
	}
	return nil
}

// openLogger builds the application logger and points the standard log
// package at the same writer. The returned func closes the log file.
func (c *commandContext) openLogger(cfg *config.Config) (*logger.Logger, func()) {
	level, err := logger.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		level = logger.LevelNormal
	}
	switch {
	case c.flags.verbose:
		level = logger.LevelVerbose
	case c.flags.quiet:
		level = logger.LevelOff
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.Paths.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.Paths.LogFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Paths.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Paths.LogFile, err)
		} else {
			out = f
			closeFn = func() { _ = f.Close() }
		}
	}

	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(level, out), closeFn
}

// openStorage returns the adapter over the SQLite database, or over memory
// with --ephemeral. The returned func releases the database and the lock.
func (c *commandContext) openStorage(cfg *config.Config, log *logger.Logger) (*storage.Adapter, func(), error) {
	slog := log.Named("storage")
	if c.flags.ephemeral {
		slog.Info("ephemeral mode: nothing will be saved")
		return storage.NewAdapter(storage.NewMemoryBackend(slog), slog), func() {}, nil
	}

	lock, err := storage.AcquireLock(cfg.Paths.DataDir)
	if err != nil {
		if errors.Is(err, domain.ErrLocked) {
			return nil, nil, fmt.Errorf("%w (%s); close the other recipebox or pass --ephemeral", err, cfg.Paths.DataDir)
		}
		return nil, nil, err
	}

	backend, err := storage.OpenSQLite(cfg.Paths.DataDir, slog)
	if err != nil {
		_ = lock.Release()
		return nil, nil, err
	}

	cleanup := func() {
		if err := backend.Close(); err != nil {
			slog.Warn("closing database: %v", err)
		}
		if err := lock.Release(); err != nil {
			slog.Warn("releasing lock: %v", err)
		}
	}
	return storage.NewAdapter(backend, slog), cleanup, nil
}

// newCatalog builds the catalog client, served from the built-in recipes
// when offline.
func newCatalog(cfg *config.Config, log *logger.Logger) (*catalog.Client, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second}
	if cfg.Catalog.Offline {
		httpClient.Transport = catalog.NewOffline(log.Named("offline")).Transport()
		log.Info("catalog: offline mode, serving built-in recipes")
	}
	return catalog.New(cfg.Catalog.BaseURL, log.Named("catalog"),
		catalog.WithHTTPClient(httpClient),
		catalog.WithCache(cfg.Catalog.CacheSize, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
