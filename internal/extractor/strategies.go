package extractor

import (
	"regexp"
	"strings"

	"fiyattakip/internal/brands"
)

// Each field resolves through an ordered chain of named strategies; the first
// strategy yielding a usable value wins and the rest never run. The chains
// are package-level data so the priority order is inspectable and testable
// rather than buried in branching.

type textStrategy struct {
	name    string
	resolve func(d *Document, p brands.Profile) string
}

type priceStrategy struct {
	name    string
	resolve func(d *Document, p brands.Profile) float64
}

// bodyPriceRegex matches a digit group sequence followed by a TRY currency
// token, e.g. "1.499 TL", "499,99TL", "1.299 ₺".
var bodyPriceRegex = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{1,3})*)\s*(?:TL|TRY|₺)`)

var titleChain = []textStrategy{
	{
		name: "structured_data",
		resolve: func(d *Document, _ brands.Profile) string {
			if product, ok := d.FirstProduct(); ok {
				return product.Name
			}
			return ""
		},
	},
	{
		name: "og_title",
		resolve: func(d *Document, _ brands.Profile) string {
			return d.MetaContent("og:title")
		},
	},
	{
		name: "brand_selectors",
		resolve: func(d *Document, p brands.Profile) string {
			return d.SelectorText(p.Selectors.Title)
		},
	},
	{
		name: "heading",
		resolve: func(d *Document, _ brands.Profile) string {
			return d.Heading()
		},
	},
	{
		name: "document_title",
		resolve: func(d *Document, _ brands.Profile) string {
			return splitDocumentTitle(d.Title())
		},
	},
}

var priceChain = []priceStrategy{
	{
		name: "structured_data",
		resolve: func(d *Document, _ brands.Profile) float64 {
			if product, ok := d.FirstProduct(); ok {
				return product.Price
			}
			return 0
		},
	},
	{
		name: "brand_selectors",
		resolve: func(d *Document, p brands.Profile) float64 {
			if text := d.SelectorText(p.Selectors.Price); text != "" {
				return ParsePrice(text)
			}
			return 0
		},
	},
	{
		name: "body_text",
		resolve: func(d *Document, _ brands.Profile) float64 {
			if matches := bodyPriceRegex.FindStringSubmatch(d.BodyText()); len(matches) > 1 {
				return ParsePrice(matches[1])
			}
			return 0
		},
	},
}

// No body-text fallback here: a missing original price just means no known
// discount.
var originalPriceChain = []priceStrategy{
	{
		name: "structured_data",
		resolve: func(d *Document, _ brands.Profile) float64 {
			if product, ok := d.FirstProduct(); ok {
				return product.HighPrice
			}
			return 0
		},
	},
	{
		name: "brand_selectors",
		resolve: func(d *Document, p brands.Profile) float64 {
			if text := d.SelectorText(p.Selectors.OriginalPrice); text != "" {
				return ParsePrice(text)
			}
			return 0
		},
	},
}

var genericImageSelectors = []string{
	"#main-image",
	"#product-image",
	".product-image",
	"img[property='og:image']",
}

var imageChain = []textStrategy{
	{
		name: "structured_data",
		resolve: func(d *Document, _ brands.Profile) string {
			if product, ok := d.FirstProduct(); ok {
				return product.Image
			}
			return ""
		},
	},
	{
		name: "og_image",
		resolve: func(d *Document, _ brands.Profile) string {
			return d.MetaContent("og:image")
		},
	},
	{
		name: "brand_selectors",
		resolve: func(d *Document, p brands.Profile) string {
			return d.SelectorImage(p.Selectors.Image)
		},
	},
	{
		name: "generic_selectors",
		resolve: func(d *Document, _ brands.Profile) string {
			return absoluteURLOnly(d.SelectorImage(genericImageSelectors))
		},
	},
}

// splitDocumentTitle cuts marketing suffixes off a <title> by splitting on
// the first known separator and keeping the left side.
func splitDocumentTitle(title string) string {
	for _, sep := range []string{"|", " - "} {
		if idx := strings.Index(title, sep); idx >= 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return strings.TrimSpace(title)
}
