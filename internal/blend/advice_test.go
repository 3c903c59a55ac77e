package blend

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fuel-blend/pkg/constants"
)

func TestEqualSplitPurity(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected float64
	}{
		{name: "volume half and half", req: volumeRequest(48, 0.27, 0.5), expected: 0.365},
		{name: "budget half and half", req: budgetRequest(100), expected: 0.2775},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purity, err := EqualSplitPurity(tt.req)
			if err != nil {
				t.Fatalf("EqualSplitPurity() error = %v", err)
			}
			if math.Abs(purity-tt.expected) > 1e-3 {
				t.Errorf("expected purity near %.4f, got %.4f", tt.expected, purity)
			}
		})
	}
}

func TestEqualSplitPurityRejectsInvalidRequest(t *testing.T) {
	req := budgetRequest(0)
	if _, err := EqualSplitPurity(req); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAdvisePrice(t *testing.T) {
	tests := []struct {
		name      string
		priceA    float64
		priceB    float64
		parity    float64
		ratio     float64
		favorable bool
	}{
		{name: "cheap ethanol", priceA: 4.99, priceB: 3.06, ratio: 0.6132, favorable: true},
		{name: "expensive ethanol", priceA: 5.00, priceB: 4.00, ratio: 0.8, favorable: false},
		{name: "exactly parity is not favorable", priceA: 10, priceB: 7, ratio: 0.7, favorable: false},
		{name: "custom parity", priceA: 5.00, priceB: 4.00, parity: 0.85, ratio: 0.8, favorable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, err := AdvisePrice(tt.priceA, tt.priceB, tt.parity)
			if err != nil {
				t.Fatalf("AdvisePrice() error = %v", err)
			}
			if math.Abs(advice.Ratio-tt.ratio) > 1e-4 {
				t.Errorf("expected ratio %.4f, got %.4f", tt.ratio, advice.Ratio)
			}
			if advice.Favorable != tt.favorable {
				t.Errorf("expected favorable=%v, got %v", tt.favorable, advice.Favorable)
			}
			if tt.parity == 0 && advice.Parity != constants.DefaultParityRatio {
				t.Errorf("expected default parity, got %v", advice.Parity)
			}
		})
	}
}

func TestAdvisePriceInvalid(t *testing.T) {
	if _, err := AdvisePrice(0, 3, 0); KindOf(err) != KindInvalidInput {
		t.Errorf("expected invalid input for zero price A, got %v", err)
	}
	if _, err := AdvisePrice(5, -1, 0); KindOf(err) != KindInvalidInput {
		t.Errorf("expected invalid input for negative price B, got %v", err)
	}
}
