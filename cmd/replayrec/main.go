package main

import (
	"os"

	"github.com/spf13/cobra"

	"replayrec/internal/config"
)

var configPath = config.DefaultPath

func main() {
	root := &cobra.Command{
		Use:          "replayrec",
		Short:        "Turn inspector property edits into replayable pseudo-code",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Project config file")
	root.AddCommand(recordCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(exportsCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
