package blend

import (
	"fmt"

	"github.com/iwvelando/fuel-blend/pkg/mathutil"
	"go.uber.org/zap"
)

// Purity returns the fraction of fluid A's pure substance in the mixture when
// x of the total is allocated to fluid A.
func Purity(req Request, x float64) float64 {
	priceA, priceB := req.searchPrices()
	volumeA := x / priceA
	volumeB := (req.Total - x) / priceB
	volume := volumeA + volumeB
	if volume <= 0 {
		return 0
	}
	return volumeA * (1 - req.DilutionFraction) / volume
}

// PurityRange returns the lowest and highest purity reachable by any split.
func PurityRange(req Request) (float64, float64) {
	atZero := Purity(req, 0)
	atTotal := Purity(req, req.Total)
	return mathutil.Min(atZero, atTotal), mathutil.Max(atZero, atTotal)
}

// Solve searches for the split whose purity matches req.TargetPurity within
// req.Tolerance. Failures are returned as *Error.
func Solve(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	low, high := PurityRange(req)
	increasing := Purity(req, req.Total) >= Purity(req, 0)

	if req.TargetPurity < low || req.TargetPurity > high {
		return Result{}, &Error{
			Kind:    KindInfeasible,
			Message: fmt.Sprintf("target purity %.4f is outside the achievable range [%.4f, %.4f]", req.TargetPurity, low, high),
			Hint:    fmt.Sprintf("choose a target purity between %.4f and %.4f", low, high),
		}
	}

	if steps := mathutil.BisectionSteps(req.Total, req.Tolerance); steps > req.iterationCap() {
		return Result{}, &Error{
			Kind:    KindConvergence,
			Message: fmt.Sprintf("narrowing %g to a tolerance of %g needs %d iterations, cap is %d", req.Total, req.Tolerance, steps, req.iterationCap()),
			Hint:    "increase the tolerance or the iteration cap",
		}
	}

	found, err := bisect(func(x float64) float64 { return Purity(req, x) },
		req.Total, req.TargetPurity, req.Tolerance, req.iterationCap(), increasing)
	if err != nil {
		return Result{}, err
	}

	return assemble(req, found, increasing), nil
}

type searchOutcome struct {
	x          float64
	value      float64
	iterations int
}

// bisect narrows [0, width] around the point where f crosses target. The
// direction of f is supplied by the caller and never re-evaluated.
func bisect(f func(float64) float64, width, target, tolerance float64, maxIterations int, increasing bool) (searchOutcome, error) {
	lower := 0.0
	upper := width
	iterations := 0

	for {
		if iterations >= maxIterations {
			return searchOutcome{}, &Error{
				Kind:    KindConvergence,
				Message: fmt.Sprintf("no split within tolerance after %d iterations (interval width %g)", iterations, upper-lower),
				Hint:    "increase the tolerance or reduce the total",
			}
		}

		mid := lower + (upper-lower)/2
		if mid == lower || mid == upper {
			return searchOutcome{}, &Error{
				Kind:    KindConvergence,
				Message: fmt.Sprintf("search interval stopped shrinking at %g after %d iterations", mid, iterations),
				Hint:    "increase the tolerance relative to the total",
			}
		}

		value := f(mid)
		iterations++

		if (increasing && value < target) || (!increasing && value > target) {
			lower = mid
		} else {
			upper = mid
		}

		if upper-lower <= tolerance && mathutil.WithinTolerance(value, target, tolerance) {
			return searchOutcome{x: mid, value: value, iterations: iterations}, nil
		}
	}
}

func assemble(req Request, found searchOutcome, increasing bool) Result {
	priceA, priceB := req.searchPrices()
	amountA := found.x
	amountB := req.Total - found.x

	result := Result{
		Mode:           req.Mode,
		Total:          req.Total,
		TargetPurity:   req.TargetPurity,
		AmountA:        amountA,
		AmountB:        amountB,
		VolumeA:        amountA / priceA,
		VolumeB:        amountB / priceB,
		AchievedPurity: found.value,
		Iterations:     found.iterations,
		Increasing:     increasing,
	}
	result.TotalVolume = result.VolumeA + result.VolumeB

	if req.Mode == ModeBudget {
		result.CostA = amountA
		result.CostB = amountB
	} else {
		result.CostA = result.VolumeA * req.PriceA
		result.CostB = result.VolumeB * req.PriceB
	}
	result.TotalCost = result.CostA + result.CostB

	return result
}

// Solver wraps Solve with logging.
type Solver struct {
	logger *zap.Logger
}

// NewSolver constructs a Solver. A nil logger disables logging.
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger}
}

// Solve runs Solve for req and logs the outcome.
func (s *Solver) Solve(req Request) (Result, error) {
	result, err := Solve(req)
	if err != nil {
		s.logger.Warn("blend solve failed",
			zap.String("op", "blend.Solve"),
			zap.String("mode", string(req.Mode)),
			zap.Float64("total", req.Total),
			zap.Float64("targetPurity", req.TargetPurity),
			zap.Stringer("kind", KindOf(err)),
			zap.Error(err),
		)
		return Result{}, err
	}

	s.logger.Debug("blend solved",
		zap.String("op", "blend.Solve"),
		zap.String("mode", string(req.Mode)),
		zap.Float64("total", req.Total),
		zap.Float64("amountA", result.AmountA),
		zap.Float64("amountB", result.AmountB),
		zap.Float64("achievedPurity", result.AchievedPurity),
		zap.Int("iterations", result.Iterations),
		zap.Bool("increasing", result.Increasing),
	)
	return result, nil
}
