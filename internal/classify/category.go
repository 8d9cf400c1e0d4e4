package classify

import "strings"

// Fallback category labels. Empty titles get GeneralCategory; non-empty
// titles matching no keyword get FashionCategory.
const (
	GeneralCategory = "General"
	FashionCategory = "Fashion"
)

// categoryRules are evaluated in order; the first rule with a matching
// keyword wins, which fixes the tie-break for titles matching several
// categories ("elbise ceketi" is a dress, not outerwear).
var categoryRules = []struct {
	label    string
	keywords []string
}{
	{"Dress", []string{"elbise", "dress"}},
	{"Trousers", []string{"pantolon", "jean", "denim", "tayt", "trousers"}},
	{"Outerwear", []string{"mont", "kaban", "ceket", "trençkot", "coat", "jacket"}},
	{"Footwear", []string{"ayakkabı", "bot", "çizme", "sneaker", "sandalet", "shoe"}},
	{"Bags", []string{"çanta", "bag"}},
}

// Category maps a product title to a category label. The function is total:
// every title, including the empty string, maps to exactly one label.
func Category(title string) string {
	if strings.TrimSpace(title) == "" {
		return GeneralCategory
	}

	lowered := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.label
			}
		}
	}

	return FashionCategory
}
