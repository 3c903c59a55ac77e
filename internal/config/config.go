// Package config defines the data structures related to configuration and
// includes functions for loading the config from YAML, environment and flags.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fuel-blend.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Blend   BlendConfig   `yaml:"blend" mapstructure:"blend"`
	FluidA  FluidConfig   `yaml:"fluidA" mapstructure:"fluidA"`
	FluidB  FluidConfig   `yaml:"fluidB" mapstructure:"fluidB"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
	Currency string `yaml:"currency,omitempty" mapstructure:"currency"`
}

// FluidConfig describes one of the two fluids being blended.
type FluidConfig struct {
	Name  string  `yaml:"name,omitempty" mapstructure:"name"`
	Price float64 `yaml:"price,omitempty" mapstructure:"price"`
	// DilutionFraction is only meaningful for fluid A.
	DilutionFraction float64 `yaml:"dilutionFraction,omitempty" mapstructure:"dilutionFraction"`
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":      "logging.level",
	"log-format":     "logging.format",
	"log-file":       "logging.outputFile",
	"output-format":  "output.format",
	"currency":       "output.currency",
	"mode":           "blend.mode",
	"total":          "blend.total",
	"target":         "blend.targetPurity",
	"tolerance":      "blend.tolerance",
	"max-iterations": "blend.maxIterations",
	"parity":         "blend.parityRatio",
	"price-a":        "fluidA.price",
	"price-b":        "fluidB.price",
	"dilution":       "fluidA.dilutionFraction",
	"name-a":         "fluidA.name",
	"name-b":         "fluidB.name",
}

// LoadConfiguration loads the YAML configuration at configPath, applies
// FUELBLEND_* environment overrides and any changed flags in flags, and
// normalizes the result. An empty configPath skips the file.
func LoadConfiguration(configPath string, flags *pflag.FlagSet) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()
	return &configuration, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so that AutomaticEnv applies during Unmarshal.
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.currency", constants.DefaultCurrencySymbol)
	v.SetDefault("blend.mode", constants.ModeVolume)
	v.SetDefault("blend.total", 0.0)
	v.SetDefault("blend.targetPurity", 0.0)
	v.SetDefault("blend.tolerance", constants.DefaultTolerance)
	v.SetDefault("blend.maxIterations", constants.DefaultMaxIterations)
	v.SetDefault("blend.parityRatio", constants.DefaultParityRatio)
	v.SetDefault("fluidA.name", constants.DefaultFluidAName)
	v.SetDefault("fluidA.price", 0.0)
	v.SetDefault("fluidA.dilutionFraction", 0.0)
	v.SetDefault("fluidB.name", constants.DefaultFluidBName)
	v.SetDefault("fluidB.price", 0.0)
	return v
}

// Normalize ensures defaults and canonical values are applied before validation.
func (c *Configuration) Normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	c.Output.Currency = strings.TrimSpace(c.Output.Currency)
	if c.Output.Currency == "" {
		c.Output.Currency = constants.DefaultCurrencySymbol
	}

	c.Blend.Normalize()

	c.FluidA.Name = strings.TrimSpace(c.FluidA.Name)
	if c.FluidA.Name == "" {
		c.FluidA.Name = constants.DefaultFluidAName
	}
	c.FluidB.Name = strings.TrimSpace(c.FluidB.Name)
	if c.FluidB.Name == "" {
		c.FluidB.Name = constants.DefaultFluidBName
	}

	// Volume mode does not need prices; unit prices keep costs equal to volumes.
	if c.Blend.Mode == constants.ModeVolume {
		if c.FluidA.Price == 0 {
			c.FluidA.Price = 1
		}
		if c.FluidB.Price == 0 {
			c.FluidB.Price = 1
		}
	}
}
