package main

import (
	"empdir/inner/common"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "empdir",
		Short:        "Employee directory service",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to .env file (environment variables take precedence)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

// loadConfig читает конфиг и создаёт по нему логгер
func (o *rootOptions) loadConfig() (common.Config, *common.Logger) {
	cfg := common.GetConfig(o.envFile)
	return cfg, common.NewLogger(cfg)
}
