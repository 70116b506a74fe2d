package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Browse archived exports",
	}
	cmd.AddCommand(exportsListCmd())
	cmd.AddCommand(exportsShowCmd())
	return cmd
}

func exportsListCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportsList(cmd, session)
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session to filter")
	return cmd
}

func runExportsList(cmd *cobra.Command, session string) error {
	ctx := cmd.Context()

	cfg, _, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	exports, err := st.ListExports(ctx, session)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(exports) == 0 {
		fmt.Fprintln(out, "No exports found.")
		return nil
	}
	for _, e := range exports {
		fmt.Fprintf(out, "%s  %s  %s [%s] %d statements\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Filename, e.Session, e.Statements)
	}
	return nil
}

func exportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportsShow(cmd, args[0])
		},
	}
}

func runExportsShow(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()

	cfg, _, err := loadEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	e, err := st.GetExport(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), e.Content)
	return nil
}
