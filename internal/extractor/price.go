package extractor

import (
	"strconv"
	"strings"
)

// ParsePrice converts raw storefront price text into a non-negative decimal.
// Turkish storefronts mix European ("1.299,90") and US ("1,299.90") digit
// grouping, often with currency symbols and stray whitespace around the
// number. Unparseable input yields 0, which downstream code reads as "price
// unknown".
//
// When only a dot is present and exactly 3 digits follow it, the dot is
// assumed to be a thousands separator ("1.299" is 1299, not 1.299): cents in
// this currency are always written with 2 digits. The heuristic is ambiguous
// by construction for true 3-decimal values, which do not occur here.
func ParsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0 && lastDot < lastComma:
		// European convention: dots group thousands, comma is the decimal mark
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case lastDot >= 0 && lastComma >= 0:
		// US convention: commas group thousands
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastDot >= 0:
		if len(cleaned)-lastDot-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	case lastComma >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
