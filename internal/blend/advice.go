package blend

import (
	"github.com/iwvelando/fuel-blend/pkg/constants"
)

// EqualSplitPurity returns the purity obtained by splitting the total half and
// half between the two fluids, as a reference point for the solved split.
func EqualSplitPurity(req Request) (float64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return Purity(req, req.Total/2), nil
}

// PriceAdvice compares the unit price of fluid B against fluid A.
type PriceAdvice struct {
	// Ratio is priceB / priceA.
	Ratio float64 `json:"ratio"`
	// Parity is the ratio at which both fluids cost the same per unit of useful energy.
	Parity float64 `json:"parity"`
	// Favorable reports whether fluid B is cheaper than parity.
	Favorable bool `json:"favorable"`
}

// AdvisePrice reports whether fluid B pays off at the given prices. A
// non-positive parity selects constants.DefaultParityRatio.
func AdvisePrice(priceA, priceB, parity float64) (PriceAdvice, error) {
	if !positiveFinite(priceA) {
		return PriceAdvice{}, invalidInput("priceA", "enter the unit price of fluid A", "must be a positive finite number, got %v", priceA)
	}
	if !positiveFinite(priceB) {
		return PriceAdvice{}, invalidInput("priceB", "enter the unit price of fluid B", "must be a positive finite number, got %v", priceB)
	}
	if parity <= 0 {
		parity = constants.DefaultParityRatio
	}
	ratio := priceB / priceA
	return PriceAdvice{
		Ratio:     ratio,
		Parity:    parity,
		Favorable: ratio < parity,
	}, nil
}
