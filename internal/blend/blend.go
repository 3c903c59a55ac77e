// Package blend finds the split of a fixed volume or budget between a diluted
// fluid and a second fluid so that the mixture reaches a target purity.
package blend

import (
	"math"
	"strings"

	"github.com/iwvelando/fuel-blend/pkg/constants"
)

// Mode selects how Request.Total is interpreted.
type Mode string

const (
	// ModeVolume treats Total as liters; the search runs directly over the volume of fluid A.
	ModeVolume Mode = constants.ModeVolume
	// ModeBudget treats Total as money; volumes are derived by dividing by unit prices.
	ModeBudget Mode = constants.ModeBudget
)

// ParseMode returns the Mode for value. Empty input selects volume mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.ModeVolume:
		return ModeVolume, nil
	case constants.ModeBudget:
		return ModeBudget, nil
	default:
		return "", invalidInput("mode", "use \"volume\" or \"budget\"", "unsupported mode %q", value)
	}
}

// Request describes one blend problem. It is passed by value and never modified.
type Request struct {
	Mode             Mode
	Total            float64
	PriceA           float64
	PriceB           float64
	DilutionFraction float64
	TargetPurity     float64
	Tolerance        float64
	// MaxIterations caps the search; zero selects constants.DefaultMaxIterations.
	MaxIterations int
}

// Result is the outcome of a successful Solve.
type Result struct {
	Mode         Mode    `json:"mode"`
	Total        float64 `json:"total"`
	TargetPurity float64 `json:"targetPurity"`

	AmountA float64 `json:"amountA"`
	AmountB float64 `json:"amountB"`

	VolumeA     float64 `json:"volumeA"`
	VolumeB     float64 `json:"volumeB"`
	TotalVolume float64 `json:"totalVolume"`

	CostA     float64 `json:"costA"`
	CostB     float64 `json:"costB"`
	TotalCost float64 `json:"totalCost"`

	AchievedPurity float64 `json:"achievedPurity"`
	Iterations     int     `json:"iterations"`
	Increasing     bool    `json:"increasing"`
}

// Validate checks every request field and returns an *Error of kind
// KindInvalidInput describing the first violation.
func (r Request) Validate() error {
	if r.Mode != ModeVolume && r.Mode != ModeBudget {
		return invalidInput("mode", "use \"volume\" or \"budget\"", "unsupported mode %q", string(r.Mode))
	}
	if !positiveFinite(r.Total) {
		return invalidInput("total", "enter a positive amount to split", "must be a positive finite number, got %v", r.Total)
	}
	if !positiveFinite(r.PriceA) {
		return invalidInput("priceA", "enter the unit price of fluid A (1 in volume mode)", "must be a positive finite number, got %v", r.PriceA)
	}
	if !positiveFinite(r.PriceB) {
		return invalidInput("priceB", "enter the unit price of fluid B (1 in volume mode)", "must be a positive finite number, got %v", r.PriceB)
	}
	if !(r.DilutionFraction >= 0 && r.DilutionFraction < 1) {
		return invalidInput("dilutionFraction", "enter the diluent share of fluid A as a fraction, e.g. 0.27", "must be in [0, 1), got %v", r.DilutionFraction)
	}
	if !(r.TargetPurity > 0 && r.TargetPurity < 1) {
		return invalidInput("targetPurity", "enter the target purity as a fraction, e.g. 0.50", "must be in (0, 1), got %v", r.TargetPurity)
	}
	if !positiveFinite(r.Tolerance) {
		return invalidInput("tolerance", "use a small positive tolerance such as 0.01", "must be a positive finite number, got %v", r.Tolerance)
	}
	if r.MaxIterations < 0 {
		return invalidInput("maxIterations", "omit it to use the default cap", "must not be negative, got %d", r.MaxIterations)
	}
	return nil
}

func (r Request) iterationCap() int {
	if r.MaxIterations == 0 {
		return constants.DefaultMaxIterations
	}
	return r.MaxIterations
}

// searchPrices returns the divisors applied to amounts before computing purity.
func (r Request) searchPrices() (float64, float64) {
	if r.Mode == ModeBudget {
		return r.PriceA, r.PriceB
	}
	return 1, 1
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
