package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/fuel-blend/internal/server"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		serverConfig  string
		address       string
		maxUploadSize string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blend solver over HTTP",
		Long: `Serve exposes POST /api/blend and GET /api/version until interrupted.

Settings come from the server config file; a missing file means defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}
			if address != "" {
				cfg.Address = address
			}
			if maxUploadSize != "" {
				size, err := server.ParseSize(maxUploadSize)
				if err != nil {
					return fmt.Errorf("invalid --max-upload-size: %w", err)
				}
				cfg.SetUploadSizeBytes(size)
			}

			if err := a.initLogger(cfg.Logging); err != nil {
				return err
			}
			a.logger.Info("starting fuel-blend server",
				zap.String("op", "cli.serve"),
				zap.String("version", Version),
				zap.String("address", cfg.Address),
				zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, a.logger, cfg, Version)
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	cmd.Flags().StringVar(&address, "address", "", fmt.Sprintf("listen address (default %s)", constants.DefaultServerAddress))
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "request body limit, e.g. 256K or 1M")
	return cmd
}
