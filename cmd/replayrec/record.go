package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"replayrec/internal/event"
	"replayrec/internal/replay"
	"replayrec/internal/sink"
)

type recordOptions struct {
	outDir  string
	stdout  bool
	archive bool
	session string
}

func recordCmd() *cobra.Command {
	var opts recordOptions
	cmd := &cobra.Command{
		Use:   "record <events-file>",
		Short: "Replay a property-change event log into a pseudo-code file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Directory to write the export into (default from config)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write the export to stdout instead of a file")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "Also store the export in the configured database")
	cmd.Flags().StringVar(&opts.session, "session", "", "Archive session name (default: events file name)")
	return cmd
}

func runRecord(cmd *cobra.Command, path string, opts recordOptions) error {
	ctx := cmd.Context()

	cfg, log, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	events, err := event.DecodeFile(path)
	if err != nil {
		return err
	}

	recorder := newRecorder(cfg, log)
	for _, e := range events {
		recorder.Record(e)
	}

	var sinks []replay.Sink
	if opts.stdout {
		sinks = append(sinks, sink.Writer(cmd.OutOrStdout()))
	} else {
		dir := opts.outDir
		if dir == "" {
			dir = cfg.Output.Dir
		}
		sinks = append(sinks, sink.Dir(dir))
	}

	var archive *sink.ArchiveSink
	if opts.archive {
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close(ctx)

		session := opts.session
		if session == "" {
			session = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		archive = sink.Archive(st, session)
		sinks = append(sinks, archive)
	}

	if err := recorder.Export(ctx, sink.Multi(sinks...)); err != nil {
		return err
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "Recording complete.")
	fmt.Fprintf(out, "  Events read:        %d\n", len(events))
	fmt.Fprintf(out, "  Statements written: %d\n", recorder.Len())
	if archive != nil && archive.Last() != nil {
		fmt.Fprintf(out, "  Archived as:        %s\n", archive.Last().ID)
	}
	return nil
}
