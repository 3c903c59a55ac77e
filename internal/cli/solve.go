package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/internal/config"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/iwvelando/fuel-blend/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func newSolveCommand(a *app) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the split for a total volume or budget",
		Long: `Solve finds how much of each fluid to buy so that the mixture reaches the
target purity. In volume mode the total is liters; in budget mode it is money
and the prices turn spend into liters.`,
		Example: `  fuel-blend solve --total 48 --dilution 0.27 --target 0.5
  fuel-blend solve --mode budget --total 100 --price-a 4.99 --price-b 3.06 --dilution 0.27 --target 0.5 --currency 'R$'
  echo 48 | fuel-blend solve --prompt --dilution 0.27 --target 0.5 --output-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, prompt)
		},
	}

	addBlendFlags(cmd.Flags())
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the total from stdin")
	return cmd
}

// addBlendFlags registers the flags that LoadConfiguration binds onto the
// blend, fluid and output sections.
func addBlendFlags(fs *pflag.FlagSet) {
	fs.String("mode", "", "what the total measures: volume or budget (default volume)")
	fs.Float64("total", 0, "total volume in liters, or total budget in budget mode")
	fs.Float64("target", 0, "target purity as a fraction, e.g. 0.5")
	fs.Float64("tolerance", constants.DefaultTolerance, "purity tolerance and final interval width")
	fs.Int("max-iterations", 0, fmt.Sprintf("bisection iteration cap (default %d)", constants.DefaultMaxIterations))
	fs.Float64("parity", 0, fmt.Sprintf("price ratio B/A below which fluid B pays off (default %.2f)", constants.DefaultParityRatio))
	fs.Float64("price-a", 0, "unit price of fluid A (default 1 in volume mode)")
	fs.Float64("price-b", 0, "unit price of fluid B (default 1 in volume mode)")
	fs.Float64("dilution", 0, "fraction of fluid A that is diluent, e.g. 0.27")
	fs.String("name-a", "", "display name of fluid A")
	fs.String("name-b", "", "display name of fluid B")
	fs.String("output-format", "", "output format: pretty, csv, json")
	fs.String("currency", "", "currency symbol for monetary values")
	fs.String("log-file", "", "write logs to this file instead of stderr")
}

// loadConfiguration merges file, environment and flags, then starts the logger.
func (a *app) loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(a.configPath(), cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := a.initLogger(conf.Logging); err != nil {
		return nil, err
	}
	return conf, nil
}

func (a *app) runSolve(cmd *cobra.Command, prompt bool) error {
	const op = "cli.solve"

	conf, err := a.loadConfiguration(cmd)
	if err != nil {
		return err
	}

	if prompt {
		total, err := readTotal(cmd.InOrStdin(), cmd.ErrOrStderr(), conf.Blend.Mode)
		if err != nil {
			return err
		}
		conf.Blend.Total = total
	}

	for _, warning := range conf.Warnings() {
		a.logger.Warn("Configuration warning: "+warning,
			zap.String("op", op),
		)
	}

	req, err := conf.Request()
	if err != nil {
		return err
	}

	result, err := blend.NewSolver(a.logger).Solve(req)
	if err != nil {
		return err
	}

	report, err := output.NewReport(req, result, conf.FluidA.Name, conf.FluidB.Name, conf.Output.Currency, conf.Blend.ParityRatio)
	if err != nil {
		return err
	}

	if err := output.Write(cmd.OutOrStdout(), conf.Output.Format, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// readTotal asks for the total on prompt and parses the first line of in.
// A decimal comma is accepted when no decimal point is present.
func readTotal(in io.Reader, prompt io.Writer, mode string) (float64, error) {
	label := "Total volume (L): "
	if mode == constants.ModeBudget {
		label = "Total budget: "
	}
	fmt.Fprint(prompt, label)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("failed to read total: %w", err)
	}

	text := strings.TrimSpace(line)
	if !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}
	total, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &blend.Error{
			Kind:    blend.KindInvalidInput,
			Field:   "total",
			Message: fmt.Sprintf("%q is not a number", strings.TrimSpace(line)),
			Hint:    "enter a decimal number such as 48 or 100.50",
		}
	}
	return total, nil
}
