// Package format renders money, volumes and fractions for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/fuel-blend/pkg/constants"
)

// Currency returns a currency string with the given symbol and thousands separators (e.g., "-R$ 1,234.56").
// Multi-character symbols are separated from the number by a space; an empty symbol falls back to "$".
func Currency(symbol string, amount float64) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = constants.DefaultCurrencySymbol
	}
	if len([]rune(symbol)) > 1 {
		symbol += " "
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Volume renders a volume in liters with two decimals.
func Volume(liters float64) string {
	return NumericCurrency(liters) + " L"
}

// Percent renders a fraction in [0, 1] as a percentage with two decimals.
func Percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*constants.PercentageMultiplier)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
