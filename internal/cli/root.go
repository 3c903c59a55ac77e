// Package cli wires the fuel-blend commands together with cobra.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/internal/config"
	"github.com/iwvelando/fuel-blend/internal/logging"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	logger    *zap.Logger
}

// NewRootCommand builds the fuel-blend command tree.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "fuel-blend",
		Short: "Find the split of two fuels that reaches a target purity",
		Long: `fuel-blend splits a total volume or budget between two fluids so that the
fraction of pure substance in the mixture matches a target.

Fluid A is diluted by a known fraction (e.g. gasoline sold with 27% ethanol),
fluid B is pure. The split is found by bisection within a tolerance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", fmt.Sprintf("config file (default is ./%s when present)", constants.DefaultConfigFile))
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (json, console)")

	root.AddCommand(
		newSolveCommand(a),
		newConfigCommand(a),
		newServeCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), describeError(err))
	}
	return err
}

// describeError renders solver failures as "<kind>: <message> (hint: ...)".
func describeError(err error) string {
	var blendErr *blend.Error
	if !errors.As(err, &blendErr) {
		return "Error: " + err.Error()
	}
	if blendErr.Hint == "" {
		return blendErr.Error()
	}
	return fmt.Sprintf("%s (hint: %s)", blendErr.Error(), blendErr.Hint)
}

// configPath resolves the --config flag, falling back to the default file in
// the working directory when it exists.
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
		return constants.DefaultConfigFile
	}
	return ""
}

// initLogger replaces the no-op logger once the logging settings are known.
func (a *app) initLogger(loggingConfig config.LoggingConfig) error {
	if a.logFormat != "" {
		loggingConfig.Format = a.logFormat
	}
	logger, err := logging.NewLogger(loggingConfig, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}
