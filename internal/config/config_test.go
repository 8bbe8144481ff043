package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the dotenv lookup at a file that does not exist so the
// developer's environment cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvFile, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv(EnvOutput, "")
	t.Setenv(EnvIndent, "")
	t.Setenv(EnvPollInterval, "")
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Output.Path != "assets.json" {
		t.Errorf("default output path = %q, want assets.json", cfg.Output.Path)
	}
	if cfg.Output.Indent != 2 {
		t.Errorf("default indent = %d, want 2", cfg.Output.Indent)
	}
	if cfg.Watch.PollInterval.Duration != time.Second {
		t.Errorf("default poll_interval = %s, want 1s", cfg.Watch.PollInterval)
	}
	if !cfg.Notifications.TerminalBell {
		t.Error("default terminal_bell should be true")
	}
	if cfg.Notifications.BellDebounce.Duration != 10*time.Second {
		t.Errorf("default bell_debounce = %s, want 10s", cfg.Notifications.BellDebounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got: %v", err)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadFrom("/nonexistent/config.yml")
	if err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if cfg.Output.Path != "assets.json" {
		t.Errorf("missing file should use defaults, got output path = %q", cfg.Output.Path)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
output:
  path: "build/frames.json"
  indent: 4
watch:
  poll_interval: "500ms"
notifications:
  terminal_bell: false
  bell_debounce: "1m"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("valid file should not error, got: %v", err)
	}
	if cfg.Output.Path != "build/frames.json" {
		t.Errorf("output path = %q, want build/frames.json", cfg.Output.Path)
	}
	if cfg.Output.Indent != 4 {
		t.Errorf("indent = %d, want 4", cfg.Output.Indent)
	}
	if cfg.Watch.PollInterval.Duration != 500*time.Millisecond {
		t.Errorf("poll_interval = %s, want 500ms", cfg.Watch.PollInterval)
	}
	if cfg.Notifications.TerminalBell {
		t.Error("terminal_bell should be false")
	}
	if cfg.Notifications.BellDebounce.Duration != time.Minute {
		t.Errorf("bell_debounce = %s, want 1m", cfg.Notifications.BellDebounce)
	}
}

func TestLoadFrom_PartialFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
output:
  indent: 0
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("partial file should not error, got: %v", err)
	}
	if cfg.Output.Indent != 0 {
		t.Errorf("indent = %d, want 0", cfg.Output.Indent)
	}
	// Partial file: path should keep default
	if cfg.Output.Path != "assets.json" {
		t.Errorf("output path should be default, got %q", cfg.Output.Path)
	}
}

func TestLoadFrom_InvalidIndent(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
output:
  indent: 12
`)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("indent of 12 should fail validation")
	}
}

func TestLoadFrom_InvalidPollInterval(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
watch:
  poll_interval: "10ms"
`)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("poll_interval of 10ms should fail validation")
	}
}

func TestLoadFrom_BadDuration(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
watch:
  poll_interval: "soon"
`)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("unparseable duration should return error")
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "{{not yaml")

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("malformed YAML should return error")
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
output:
  path: "from-file.json"
`)
	t.Setenv(EnvOutput, "from-env.json")
	t.Setenv(EnvIndent, "3")
	t.Setenv(EnvPollInterval, "2s")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Path != "from-env.json" {
		t.Errorf("output path = %q, want from-env.json", cfg.Output.Path)
	}
	if cfg.Output.Indent != 3 {
		t.Errorf("indent = %d, want 3", cfg.Output.Indent)
	}
	if cfg.Watch.PollInterval.Duration != 2*time.Second {
		t.Errorf("poll_interval = %s, want 2s", cfg.Watch.PollInterval)
	}
}

func TestLoadFrom_InvalidEnvIndent(t *testing.T) {
	isolate(t)
	t.Setenv(EnvIndent, "wide")

	if _, err := LoadFrom(""); err == nil {
		t.Fatal("non-numeric indent should return error")
	}
}

func TestLoadFrom_DotEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envPath, []byte("ASSETCONV_OUTPUT=dotenv.json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFile, envPath)
	os.Unsetenv(EnvOutput)
	t.Cleanup(func() { os.Unsetenv(EnvOutput) })

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Path != "dotenv.json" {
		t.Errorf("output path = %q, want dotenv.json", cfg.Output.Path)
	}
}

func TestConfigPath_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := configPath()
	want := "/custom/config/assetconv/config.yml"
	if path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}
