package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"tarediiran-industries.com/tfl-status/internal/status"
	"tarediiran-industries.com/tfl-status/internal/tfl"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingOptionalFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != tfl.DefaultBaseURL || cfg.Timeout != tfl.DefaultTimeout {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if id, err := registry.Lookup("Central"); err != nil || id != "central" {
		t.Errorf("Lookup(Central) = %q, %v", id, err)
	}
}

func TestLoadMissingRequiredFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true); err == nil {
		t.Error("expected error for missing required config")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
base_url = "http://localhost:9000"
timeout = "3s"
surface = "*status*"
log_level = "debug"

[colors]
good_service = "cyan"

[[extra_lines]]
name = "Emirates Air Line"
id = "london-cable-car"
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Surface != "*status*" {
		t.Errorf("Surface = %q", cfg.Surface)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
	if cfg.Palette.For(status.GoodService).Attr != color.FgCyan {
		t.Errorf("good_service color = %+v", cfg.Palette.For(status.GoodService))
	}

	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if _, err := registry.Lookup("Central"); err != nil {
		t.Errorf("default lines dropped: %v", err)
	}
	if id, _ := registry.Lookup("Emirates Air Line"); id != "london-cable-car" {
		t.Errorf("extra line id = %q", id)
	}
}

func TestLoadFileReplacesLines(t *testing.T) {
	path := writeConfig(t, `
[[lines]]
name = "Central"
id = "central"

[[lines]]
name = "Victoria"
id = "victoria"
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Lines) != 2 {
		t.Errorf("len(Lines) = %d, expected 2", len(cfg.Lines))
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		label string
		body  string
	}{
		{"bad timeout", `timeout = "soon"`},
		{"bad color", "[colors]\nminor_delay = \"chartreuse\""},
		{"bad url", `base_url = "ftp://example.com"`},
		{"duplicate line", "[[extra_lines]]\nname = \"Central\"\nid = \"central\""},
		{"unknown key", `base_ulr = "https://api.tfl.gov.uk"`},
		{"bad level", `log_level = "chatty"`},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body), true); err == nil {
				t.Errorf("Load(%q) succeeded, expected error", tc.body)
			}
		})
	}
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("not-a-valid line\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	chdir(t, dir)

	if _, err := Load("", false); err == nil {
		t.Error("expected error for malformed .env")
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := Load("", false); err != nil {
		t.Errorf("Load without .env: %v", err)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `base_url = "http://from-file:9000"`)
	t.Setenv(EnvBaseURL, "http://from-env:9000")
	t.Setenv(EnvTimeout, "750ms")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://from-env:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 750*time.Millisecond {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "tfl-status.example.toml"), true)
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if len(cfg.Lines) <= 1 {
		t.Errorf("example config produced %d lines", len(cfg.Lines))
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (unavailable before Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	})
}
