package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate runs the test from an empty directory with no TODO_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{
		"TODO_CONFIG", "TODO_DATA_FILE", "TODO_ADDR", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT",
		"TODO_THEME", "TODO_SHUTDOWN_TIMEOUT_SECONDS", "TODO_RATE_LIMIT", "TODO_RATE_WINDOW_SECONDS",
		"TODO_REDIS_ADDR", "TODO_REDIS_PASSWORD", "TODO_REDIS_DB", "TODO_OTEL_ENABLED", "TODO_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func load(t *testing.T, args ...string) (*Config, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	cfg, err := Load(fs, args)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg, fs
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, _ := load(t)

	if cfg.DataFile != "resource/todo.json" {
		t.Errorf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr: got %q", cfg.Addr)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" || cfg.Theme != "classic" {
		t.Errorf("log/theme defaults: got %q %q %q", cfg.LogLevel, cfg.LogFormat, cfg.Theme)
	}
	if cfg.ShutdownTimeout() != 10*time.Second || cfg.RateWindow() != time.Minute {
		t.Errorf("durations: got %v %v", cfg.ShutdownTimeout(), cfg.RateWindow())
	}
	if cfg.RateLimit != 0 || cfg.OTelEnabled || cfg.ConfigFile != "" {
		t.Errorf("optional features should be off: %+v", cfg)
	}
}

func TestPriorityFileEnvFlags(t *testing.T) {
	dir := isolate(t)
	content := `
data_file = "from-file.json"
addr = "0.0.0.0:9000"
theme = "neon"
rate_limit = 5
`
	if err := os.WriteFile(filepath.Join(dir, "todo.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODO_ADDR", "127.0.0.1:7000")
	t.Setenv("TODO_OTEL_ENABLED", "yes")

	cfg, fs := load(t, "-theme", "mono", "list", "--mode", "done")

	if cfg.ConfigFile != "todo.toml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if cfg.DataFile != "from-file.json" {
		t.Errorf("file should set DataFile, got %q", cfg.DataFile)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Errorf("env should override file, got %q", cfg.Addr)
	}
	if cfg.Theme != "mono" {
		t.Errorf("flag should override file, got %q", cfg.Theme)
	}
	if cfg.RateLimit != 5 || !cfg.OTelEnabled {
		t.Errorf("rate limit / otel: got %d %v", cfg.RateLimit, cfg.OTelEnabled)
	}
	if got := fs.Args(); len(got) != 3 || got[0] != "list" {
		t.Errorf("positional args: got %v", got)
	}
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_LOG_FORMAT=json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already present.
	if err := os.Unsetenv("TODO_LOG_FORMAT"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("TODO_LOG_FORMAT") })

	cfg, _ := load(t)
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	isolate(t)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	if _, err := Load(fs, []string{"-config", "missing.toml"}); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty data file", []string{"-data", " "}},
		{"negative rate limit", []string{"-rate-limit", "-1"}},
		{"unknown log format", []string{"-log-format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			fs := flag.NewFlagSet("todo", flag.ContinueOnError)
			if _, err := Load(fs, tt.args); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}
