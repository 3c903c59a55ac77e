// Package constants provides shared constants for the fuel-blend application.
package constants

// Solver defaults
const (
	// DefaultTolerance is the purity tolerance and interval width used when none is given
	DefaultTolerance = 0.01

	// DefaultMaxIterations caps the bisection search
	DefaultMaxIterations = 200

	// DefaultParityRatio is the fluid B to fluid A price ratio below which fluid B pays off
	DefaultParityRatio = 0.70
)

// Mode constants
const (
	// ModeVolume splits a fixed total volume
	ModeVolume = "volume"

	// ModeBudget splits a fixed total spend
	ModeBudget = "budget"
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCurrencySymbol prefixes monetary values in rendered output
	DefaultCurrencySymbol = "$"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Fluid naming defaults
const (
	DefaultFluidAName = "fluid A"
	DefaultFluidBName = "fluid B"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "fuel-blend.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "FUELBLEND"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
