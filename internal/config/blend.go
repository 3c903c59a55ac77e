package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/iwvelando/fuel-blend/pkg/mathutil"
	"github.com/iwvelando/fuel-blend/pkg/validation"
)

// BlendConfig holds the parameters of the split being solved.
type BlendConfig struct {
	Mode          string  `yaml:"mode,omitempty" mapstructure:"mode"`
	Total         float64 `yaml:"total" mapstructure:"total"`
	TargetPurity  float64 `yaml:"targetPurity" mapstructure:"targetPurity"`
	Tolerance     float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
	ParityRatio   float64 `yaml:"parityRatio,omitempty" mapstructure:"parityRatio"`
}

// Normalize applies defaults to unset fields. Negative values are kept so
// that the solver reports them.
func (b *BlendConfig) Normalize() {
	b.Mode = strings.ToLower(strings.TrimSpace(b.Mode))
	if b.Mode == "" {
		b.Mode = constants.ModeVolume
	}
	if b.Tolerance == 0 {
		b.Tolerance = constants.DefaultTolerance
	}
	if b.MaxIterations == 0 {
		b.MaxIterations = constants.DefaultMaxIterations
	}
	if b.ParityRatio <= 0 {
		b.ParityRatio = constants.DefaultParityRatio
	}
}

// Validate returns an error when the configuration cannot be used at all.
// Out-of-domain blend parameters are left to the solver.
func (c *Configuration) Validate() error {
	if _, err := blend.ParseMode(c.Blend.Mode); err != nil {
		return err
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Logging.Level != "" {
		if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
			return err
		}
	}
	return nil
}

// Warnings reports settings that are accepted but probably not intended.
func (c *Configuration) Warnings() []string {
	var warnings []string

	if c.Blend.Tolerance > 0 && c.Blend.TargetPurity > 0 && c.Blend.Tolerance >= c.Blend.TargetPurity {
		warnings = append(warnings, fmt.Sprintf("tolerance %.4f is not smaller than the target purity %.4f", c.Blend.Tolerance, c.Blend.TargetPurity))
	}

	if steps := mathutil.BisectionSteps(c.Blend.Total, c.Blend.Tolerance); c.Blend.MaxIterations > 0 && steps > c.Blend.MaxIterations {
		warnings = append(warnings, fmt.Sprintf("maxIterations %d is below the %d steps needed to reach tolerance %g on a total of %g",
			c.Blend.MaxIterations, steps, c.Blend.Tolerance, c.Blend.Total))
	}

	if c.Blend.Mode == constants.ModeVolume && (c.FluidA.Price != 1 || c.FluidB.Price != 1) {
		warnings = append(warnings, "prices only affect the cost quote in volume mode, not the split")
	}

	return warnings
}

// Request converts the configuration into a solver request.
func (c *Configuration) Request() (blend.Request, error) {
	mode, err := blend.ParseMode(c.Blend.Mode)
	if err != nil {
		return blend.Request{}, err
	}
	return blend.Request{
		Mode:             mode,
		Total:            c.Blend.Total,
		PriceA:           c.FluidA.Price,
		PriceB:           c.FluidB.Price,
		DilutionFraction: c.FluidA.DilutionFraction,
		TargetPurity:     c.Blend.TargetPurity,
		Tolerance:        c.Blend.Tolerance,
		MaxIterations:    c.Blend.MaxIterations,
	}, nil
}
