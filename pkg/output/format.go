// Package output provides utilities for formatting and displaying blend results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/fuel-blend/internal/blend"
	"github.com/iwvelando/fuel-blend/pkg/constants"
	"github.com/iwvelando/fuel-blend/pkg/format"
	"github.com/iwvelando/fuel-blend/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders the report in the named format.
func Write(w io.Writer, outputFormat string, report Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, report Report) error {
	p := message.NewPrinter(language.English)
	res := report.Result
	d := report.Display

	var header string
	if res.Mode == blend.ModeBudget {
		header = p.Sprintf("--- Blend for a budget of %s ---", format.Currency(report.Currency, res.Total))
	} else {
		header = p.Sprintf("--- Blend for a volume of %.2f L ---", res.Total)
	}

	lines := []string{
		header,
		row(p, "Amount for "+report.FluidA, d.AmountA),
		row(p, "Amount for "+report.FluidB, d.AmountB),
		row(p, "Volume of "+report.FluidA, d.VolumeA),
		row(p, "Volume of "+report.FluidB, d.VolumeB),
		row(p, "Total volume", d.TotalVolume),
	}
	if report.Priced {
		lines = append(lines,
			row(p, "Cost of "+report.FluidA, d.CostA),
			row(p, "Cost of "+report.FluidB, d.CostB),
			row(p, "Total cost", d.TotalCost),
		)
	}
	lines = append(lines,
		row(p, "Achieved purity", p.Sprintf("%s (target %s, %d iterations)", d.AchievedPurity, d.TargetPurity, res.Iterations)),
		row(p, "Equal split purity", d.EqualSplitPurity),
	)
	if advice := report.PriceAdvice; advice != nil {
		verdict := "does not pay off"
		if advice.Favorable {
			verdict = "pays off"
		}
		lines = append(lines, row(p, "Price ratio",
			p.Sprintf("%s costs %.2f%% of %s (parity %.2f%%), %s %s",
				report.FluidB, advice.Ratio*constants.PercentageMultiplier, report.FluidA,
				advice.Parity*constants.PercentageMultiplier, report.FluidB, verdict)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func row(p *message.Printer, label, value string) string {
	return p.Sprintf("%-28s %s", label+":", value)
}

// CsvFormat outputs in comma-separated value format. Every field is quoted.
func CsvFormat(w io.Writer, report Report) error {
	res := report.Result
	header := csvLine("mode", "total", "fluidA", "amountA", "volumeA", "costA",
		"fluidB", "amountB", "volumeB", "costB", "totalVolume", "totalCost",
		"targetPurity", "achievedPurity", "equalSplitPurity", "iterations")
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	record := csvLine(string(res.Mode), cents(res.Total),
		report.FluidA, cents(res.AmountA), cents(res.VolumeA), cents(res.CostA),
		report.FluidB, cents(res.AmountB), cents(res.VolumeB), cents(res.CostB),
		cents(res.TotalVolume), cents(res.TotalCost),
		fraction(res.TargetPurity), fraction(res.AchievedPurity), fraction(report.EqualSplitPurity),
		strconv.Itoa(res.Iterations),
	)
	_, err := fmt.Fprintln(w, record)
	return err
}

// csvLine quotes each field, doubling embedded quotes.
func csvLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func cents(value float64) string {
	return strconv.FormatFloat(mathutil.Round(value), 'f', 2, 64)
}

func fraction(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

// JSONFormat outputs the full report as indented JSON.
func JSONFormat(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
