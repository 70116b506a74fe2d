package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"replayrec/internal/logging"
	"replayrec/internal/replay"
)

const DefaultPath = "replayrec.yaml"

type ProjectConfig struct {
	Project   string         `yaml:"project"`
	Version   int            `yaml:"version"`
	Namespace string         `yaml:"namespace"`
	Output    OutputConfig   `yaml:"output"`
	Database  DatabaseConfig `yaml:"database"`
	Log       LogConfig      `yaml:"log"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Filename string `yaml:"filename"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

// Default is the configuration used when no project file is present.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{Project: "replayrec", Version: 1}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *ProjectConfig) {
	if strings.TrimSpace(cfg.Namespace) == "" {
		cfg.Namespace = replay.DefaultNamespace
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = "."
	}
	if strings.TrimSpace(cfg.Output.Filename) == "" {
		cfg.Output.Filename = replay.DefaultFilename
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.ContainsAny(cfg.Output.Filename, `/\`) {
		return fmt.Errorf("output filename must not contain a path: %s", cfg.Output.Filename)
	}
	if dsn := cfg.Database.DSN; dsn != "" && DSNDriver(dsn) == "" {
		return fmt.Errorf("unsupported database dsn: %s", dsn)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

// DSNDriver names the archive driver for a DSN, empty when the scheme is unknown.
func DSNDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite"
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres"
	default:
		return ""
	}
}
