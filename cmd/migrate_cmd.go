package main

import (
	"context"
	"fmt"

	"empdir/inner/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(newMigrateStepCmd(opts, "up", "Apply all pending migrations", (*database.Migrator).Up))
	cmd.AddCommand(newMigrateStepCmd(opts, "down", "Roll back the last applied migration", (*database.Migrator).Down))
	cmd.AddCommand(newMigrateStatusCmd(opts))
	return cmd
}

func newMigrateStepCmd(
	opts *rootOptions,
	use string,
	short string,
	step func(*database.Migrator, context.Context) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(migrator *database.Migrator) error {
				return step(migrator, cmd.Context())
			})
		},
	}
}

func newMigrateStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(opts, func(migrator *database.Migrator) error {
				states, err := migrator.Status(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, state := range states {
					applied := "pending"
					if state.Applied {
						applied = "applied"
					}
					_, _ = fmt.Fprintf(out, "%05d  %-8s %s\n", state.Version, applied, state.Path)
				}
				return nil
			})
		},
	}
}

func withMigrator(opts *rootOptions, fn func(migrator *database.Migrator) error) error {
	cfg, logger := opts.loadConfig()
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectDbWithCfg(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	migrator, err := database.NewMigrator(db, logger)
	if err != nil {
		return err
	}
	return fn(migrator)
}
