package output

import (
	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/iwvelando/fuel-blend/pkg/format"
)

// Report bundles a solved blend with what is needed to present it.
type Report struct {
	FluidA           string             `json:"fluidA"`
	FluidB           string             `json:"fluidB"`
	Currency         string             `json:"currency"`
	Priced           bool               `json:"priced"`
	Result           blend.Result       `json:"result"`
	EqualSplitPurity float64            `json:"equalSplitPurity"`
	PriceAdvice      *blend.PriceAdvice `json:"priceAdvice,omitempty"`
	Display          Display            `json:"display"`
}

// Display holds two-decimal text renderings of a Report's numbers.
type Display struct {
	AmountA          string `json:"amountA"`
	AmountB          string `json:"amountB"`
	VolumeA          string `json:"volumeA"`
	VolumeB          string `json:"volumeB"`
	TotalVolume      string `json:"totalVolume"`
	CostA            string `json:"costA,omitempty"`
	CostB            string `json:"costB,omitempty"`
	TotalCost        string `json:"totalCost,omitempty"`
	TargetPurity     string `json:"targetPurity"`
	AchievedPurity   string `json:"achievedPurity"`
	EqualSplitPurity string `json:"equalSplitPurity"`
}

// NewReport builds a Report for a request and its solved result. The price
// advice is only attached when the request carries real prices.
func NewReport(req blend.Request, result blend.Result, fluidA, fluidB, currency string, parity float64) (Report, error) {
	if fluidA == "" {
		fluidA = constants.DefaultFluidAName
	}
	if fluidB == "" {
		fluidB = constants.DefaultFluidBName
	}
	if currency == "" {
		currency = constants.DefaultCurrencySymbol
	}

	equalSplit, err := blend.EqualSplitPurity(req)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		FluidA:           fluidA,
		FluidB:           fluidB,
		Currency:         currency,
		Priced:           req.Mode == blend.ModeBudget || req.PriceA != 1 || req.PriceB != 1,
		Result:           result,
		EqualSplitPurity: equalSplit,
	}

	if report.Priced {
		advice, err := blend.AdvisePrice(req.PriceA, req.PriceB, parity)
		if err != nil {
			return Report{}, err
		}
		report.PriceAdvice = &advice
	}

	report.Display = report.display()
	return report, nil
}

func (r Report) display() Display {
	d := Display{
		AmountA:          r.amount(r.Result.AmountA),
		AmountB:          r.amount(r.Result.AmountB),
		VolumeA:          format.Volume(r.Result.VolumeA),
		VolumeB:          format.Volume(r.Result.VolumeB),
		TotalVolume:      format.Volume(r.Result.TotalVolume),
		TargetPurity:     format.Percent(r.Result.TargetPurity),
		AchievedPurity:   format.Percent(r.Result.AchievedPurity),
		EqualSplitPurity: format.Percent(r.EqualSplitPurity),
	}
	if r.Priced {
		d.CostA = format.Currency(r.Currency, r.Result.CostA)
		d.CostB = format.Currency(r.Currency, r.Result.CostB)
		d.TotalCost = format.Currency(r.Currency, r.Result.TotalCost)
	}
	return d
}

// amount renders a split amount: money in budget mode, liters in volume mode.
func (r Report) amount(value float64) string {
	if r.Result.Mode == blend.ModeBudget {
		return format.Currency(r.Currency, value)
	}
	return format.Volume(value)
}
