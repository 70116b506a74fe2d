package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"replayrec/internal/mcp"
	"replayrec/internal/sink"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var archive bool
	var session string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, archive, session)
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", false, "Store exports in the configured database")
	cmd.Flags().StringVar(&session, "session", "mcp", "Archive session name")
	return cmd
}

func runServe(cmd *cobra.Command, archive bool, session string) error {
	ctx := cmd.Context()

	// stdout carries the MCP protocol, logs go to stderr.
	cfg, log, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := mcp.Options{
		Version: version,
		Sink:    sink.Dir(cfg.Output.Dir),
		Logger:  log,
	}

	if archive {
		st, err := openStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("opening export archive: %w", err)
		}
		defer st.Close(ctx)

		opts.Sink = sink.Multi(opts.Sink, sink.Archive(st, session))
		opts.Archive = st
	}

	server := mcp.NewServer(newRecorder(cfg, log), opts)
	return server.Run(ctx, &sdk.StdioTransport{})
}
