package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/hammamikhairi/recipebox/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvNtfyTopic, "")
	t.Setenv(config.EnvAzureSpeechKey, "")
	t.Setenv(config.EnvAzureSpeechRegion, "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsExpandPaths(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "recipebox", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}

	wantData := filepath.Join(home, ".local", "share", "recipebox")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogFile != filepath.Join(wantData, "recipebox.log") {
		t.Fatalf("log file = %q", cfg.Paths.LogFile)
	}
	if cfg.Catalog.TimeoutSeconds != 0 {
		t.Fatalf("expected no catalog timeout by default, got %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.UI.RecommendationCount != 5 {
		t.Fatalf("recommendation count = %d, want 5", cfg.UI.RecommendationCount)
	}
	if cfg.NtfyConfigured() || cfg.SpeechConfigured() {
		t.Fatal("expected push and speech off without credentials")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv(config.EnvNtfyTopic, "https://ntfy.sh/kitchen")
	t.Setenv(config.EnvAzureSpeechKey, "k")
	t.Setenv(config.EnvAzureSpeechRegion, "westeurope")

	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"
log_file = "stderr"

[notifications]
enabled = true

[ui]
default_theme = "Dark"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.LogFile != "stderr" {
		t.Fatalf("log file = %q, want stderr", cfg.Paths.LogFile)
	}
	if cfg.UI.DefaultTheme != "dark" {
		t.Fatalf("theme = %q, want dark", cfg.UI.DefaultTheme)
	}
	if !cfg.NtfyConfigured() {
		t.Fatal("expected ntfy configured from env")
	}
	if !cfg.SpeechConfigured() {
		t.Fatal("expected speech configured from env")
	}
	if cfg.Speech.CacheDir != filepath.Join(dir, "data", "tts-cache") {
		t.Fatalf("speech cache dir = %q", cfg.Speech.CacheDir)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	cases := map[string]string{
		"theme":   "[ui]\ndefault_theme = \"sepia\"\n",
		"url":     "[catalog]\nbase_url = \"not a url\"\n",
		"unknown": "[catalog]\nbase_ur = \"typo\"\n",
		"level":   "[ui]\nlog_level = \"loud\"\n",
		"ntfy":    "[notifications]\nenabled = true\nntfy_topic = \"kitchen\"\n",
		"timeout": "[catalog]\ntimeout_seconds = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestSetDataDirRederivesPaths(t *testing.T) {
	isolate(t)
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := cfg.SetDataDir(dir); err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.LogFile != filepath.Join(dir, "recipebox.log") {
		t.Fatalf("log file = %q", cfg.Paths.LogFile)
	}
	if cfg.Speech.CacheDir != filepath.Join(dir, "tts-cache") {
		t.Fatalf("cache dir = %q", cfg.Speech.CacheDir)
	}
}

func TestDotEnvIsRead(t *testing.T) {
	isolate(t)
	os.Unsetenv(config.EnvNtfyTopic)
	if err := os.WriteFile(".env", []byte(config.EnvNtfyTopic+"=https://ntfy.sh/from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(config.EnvNtfyTopic) })

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.sh/from-dotenv" {
		t.Fatalf("ntfy topic = %q", cfg.Notifications.NtfyTopic)
	}
}

func TestSampleConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		t.Fatalf("sample config does not decode: %v", err)
	}
	if cfg.UI.RecommendationCount != 5 {
		t.Fatalf("sample recommendation count = %d", cfg.UI.RecommendationCount)
	}
}
