package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := opts.loadConfig()
			if seed {
				cfg.SeedDemoData = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer app.close()

			return app.run(ctx)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Fill an empty directory with demo employees (same as SEED_DEMO_DATA=true)")
	return cmd
}
