package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Config merges the config file, FUELBLEND_* environment variables and flags
exactly as solve does and prints the result, with defaults filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := a.loadConfiguration(cmd)
			if err != nil {
				return err
			}

			for _, warning := range conf.Warnings() {
				a.logger.Warn("Configuration warning: "+warning,
					zap.String("op", "cli.config"),
				)
			}

			data, err := yaml.Marshal(conf)
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addBlendFlags(cmd.Flags())
	return cmd
}
