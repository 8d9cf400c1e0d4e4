package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"turkish thousands only", "1.299", 1299},
		{"turkish decimal comma", "499,99", 499.99},
		{"turkish full form", "1.200,50", 1200.50},
		{"english full form", "1,200.50", 1200.50},
		{"plain decimal dot", "12.99", 12.99},
		{"currency suffix", "1.299,00 TL", 1299},
		{"currency symbol prefix", "₺499,99", 499.99},
		{"currency code", "TRY 89,95", 89.95},
		{"plain integer", "250", 250},
		{"embedded text", "Fiyat: 149,99 TL", 149.99},
		{"empty string", "", 0},
		{"no digits", "abc", 0},
		{"whitespace only", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePrice(tt.input), 0.001)
		})
	}
}

func TestParsePriceAmbiguousThreeDigitGroup(t *testing.T) {
	// A lone dot followed by exactly three digits reads as a thousands
	// separator, so 12.990 is twelve thousand, not ~13.
	assert.InDelta(t, 12990, ParsePrice("12.990"), 0.001)

	// A lone comma is always the decimal mark, whatever the group size
	assert.InDelta(t, 12.99, ParsePrice("12,990"), 0.001)
	assert.InDelta(t, 12.9, ParsePrice("12,9"), 0.001)
	assert.InDelta(t, 12.99, ParsePrice("12,99"), 0.001)
}

func TestParsePriceNeverNegative(t *testing.T) {
	for _, input := range []string{"-5", "- 10,50 TL", "−99"} {
		assert.GreaterOrEqual(t, ParsePrice(input), 0.0, "input %q", input)
	}
}
