package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
	"github.com/hammamikhairi/recipebox/internal/store"
)

type cliTestEnv struct {
	baseDir    string
	dataDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("AZURE_SPEECH_KEY", "")
	t.Setenv("AZURE_SPEECH_REGION", "")
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:    base,
		dataDir:    filepath.Join(base, "data"),
		configPath: filepath.Join(base, "config.toml"),
	}
	body := "[catalog]\noffline = true\n\n[speech]\nenabled = false\n"
	if err := os.WriteFile(env.configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath, "--data-dir", env.dataDir, "--log-file", "stderr", "--quiet"}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "(offline)")
	requireContains(t, out, "Speech:      disabled")

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err = runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}
	if _, _, err := runCLI(t, env, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitSkipsBrokenConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[ui]\ndefault_theme = \"neon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := runCLI(t, env, "config", "validate"); err == nil {
		t.Fatal("expected validate to reject the theme")
	}
	target := filepath.Join(env.baseDir, "sample.toml")
	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init should not load the config: %v", err)
	}
}

func TestSearchOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "search", "chicken")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, `Results for "chicken"`)
	requireContains(t, out, "Chicken Alfredo")

	out, _, err = runCLI(t, env, "search", "zzz-nothing")
	if err != nil {
		t.Fatalf("search without matches: %v", err)
	}
	requireContains(t, out, "No recipes found")
}

func TestLookupOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "lookup", "90001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, "Chicken Alfredo")
	requireContains(t, out, "Spaghetti")

	if _, _, err := runCLI(t, env, "lookup", "12345678"); err == nil {
		t.Fatal("expected an error for an unknown id")
	}
}

func TestShoppingExport(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	if err := os.MkdirAll(env.dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data: %v", err)
	}
	log := logger.New(logger.LevelOff, nil)
	backend, err := storage.OpenSQLite(env.dataDir, log)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	stores := store.Open(ctx, storage.NewAdapter(backend, log), log, domain.ThemeLight)
	stores.Shopping.Add(ctx, []string{"Flour - 2 cups", "Eggs - 3"}, "Banana Bread")
	if _, err := stores.Shopping.Toggle(ctx, 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out, _, err := runCLI(t, env, "shopping", "export")
	if err != nil {
		t.Fatalf("shopping export: %v", err)
	}
	requireContains(t, out, "Shopping List")
	requireContains(t, out, "[ ] Flour - 2 cups")
	requireContains(t, out, "[x] Eggs - 3")

	target := filepath.Join(env.baseDir, "list.txt")
	out, _, err = runCLI(t, env, "shopping", "export", "--pending", target)
	if err != nil {
		t.Fatalf("shopping export to file: %v", err)
	}
	requireContains(t, out, "Wrote 1 items")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.Contains(string(data), "Eggs") {
		t.Fatalf("pending export should skip checked items:\n%s", data)
	}
}
