package main

import (
	"fmt"

	"empdir/inner/database"
	"empdir/inner/employee"
	"empdir/inner/validator"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty directory with demo employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := opts.loadConfig()
			defer func() { _ = logger.Sync() }()

			db, err := database.ConnectDbWithCfg(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(cmd.Context(), db, logger); err != nil {
				return err
			}

			service := employee.NewService(employee.NewEmployeeRepository(db), validator.New(), logger)
			added, err := service.Seed(cmd.Context(), employee.DemoEmployees())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "employees added: %d\n", added)
			return nil
		},
	}
}
