package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfig(t *testing.T) {
	t.Run("valid config loads", func(t *testing.T) {
		cfg, err := LoadProjectConfig(filepath.Join("testdata", "valid_config.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Project != "test-project" {
			t.Fatalf("expected project name, got %q", cfg.Project)
		}
		if cfg.Output.Dir != "./exports" {
			t.Fatalf("expected output dir, got %q", cfg.Output.Dir)
		}
		if cfg.Database.DSN != "sqlite://./replayrec.db" {
			t.Fatalf("expected dsn, got %q", cfg.Database.DSN)
		}
		if cfg.Log.Level != "debug" {
			t.Fatalf("expected debug level, got %q", cfg.Log.Level)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\n")
		cfg, err := LoadProjectConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Namespace != "BABYLON" {
			t.Fatalf("expected default namespace, got %q", cfg.Namespace)
		}
		if cfg.Output.Filename != "pseudo-code.txt" || cfg.Output.Dir != "." {
			t.Fatalf("unexpected output defaults %#v", cfg.Output)
		}
		if cfg.Log.Level != "info" {
			t.Fatalf("expected info level, got %q", cfg.Log.Level)
		}
	})

	t.Run("missing project name", func(t *testing.T) {
		path := writeTempConfig(t, "version: 1\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 2\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("filename with path", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\noutput:\n  filename: ../out.txt\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown dsn scheme", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\ndatabase:\n  dsn: mysql://localhost/db\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown log level", func(t *testing.T) {
		path := writeTempConfig(t, "project: test\nversion: 1\nlog:\n  level: loud\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "project: [\n")
		if _, err := LoadProjectConfig(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := validateProjectConfig(cfg); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestDSNDriver(t *testing.T) {
	tests := map[string]string{
		"sqlite://./a.db":           "sqlite",
		"postgres://localhost/db":   "postgres",
		"postgresql://localhost/db": "postgres",
		"mysql://localhost/db":      "",
		"":                          "",
	}
	for dsn, want := range tests {
		if got := DSNDriver(dsn); got != want {
			t.Fatalf("%q: expected %q, got %q", dsn, want, got)
		}
	}
}

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
