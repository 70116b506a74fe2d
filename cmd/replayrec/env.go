package main

import (
	"errors"
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"replayrec/internal/config"
	"replayrec/internal/logging"
	"replayrec/internal/replay"
)

// loadEnv reads the project config and builds the logger. A missing config at
// the default path falls back to defaults, an explicit path must exist.
func loadEnv(logOut io.Writer) (*config.ProjectConfig, zerolog.Logger, error) {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		if configPath != config.DefaultPath || !errors.Is(err, fs.ErrNotExist) {
			return nil, zerolog.Nop(), err
		}
		cfg = config.Default()
	}
	log := logging.New(logOut, cfg.Log.Level)
	log.Debug().Str("config", configPath).Str("project", cfg.Project).Msg("configuration loaded")
	return cfg, log, nil
}

func newRecorder(cfg *config.ProjectConfig, log zerolog.Logger) *replay.Recorder {
	r := replay.New(replay.Options{
		Namespace: cfg.Namespace,
		Filename:  cfg.Output.Filename,
		Logger:    log,
	})
	r.Reset()
	return r
}
