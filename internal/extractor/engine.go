package extractor

import (
	"strings"

	"fiyattakip/internal/brands"
	"fiyattakip/internal/logging"
	"fiyattakip/pkg/utils"
)

// Fields holds the extraction engine's output for one page. Zero values mean
// "not found": the assembler decides what that implies per field.
type Fields struct {
	Title         string
	CurrentPrice  float64
	OriginalPrice float64
	ImageURL      string
}

// Engine resolves product fields from a parsed page through per-field
// strategy chains. Fields resolve independently: a page with no usable price
// can still contribute a title and image.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates an extraction engine.
func NewEngine(logger logging.Logger) *Engine {
	return &Engine{logger: logger}
}

// Extract runs every field chain against the document and applies the price
// integrity rule. A zero final price is a warning, not an error; the caller
// still gets a valid result meaning "price unknown".
func (e *Engine) Extract(doc *Document, profile brands.Profile, url string) Fields {
	fields := Fields{}

	var titleStrategy string
	for _, s := range titleChain {
		if value := s.resolve(doc, profile); value != "" {
			fields.Title = cleanTitle(value, profile)
			titleStrategy = s.name
			break
		}
	}

	var priceStrategy string
	for _, s := range priceChain {
		if value := s.resolve(doc, profile); value > 0 {
			fields.CurrentPrice = value
			priceStrategy = s.name
			break
		}
	}

	for _, s := range originalPriceChain {
		if value := s.resolve(doc, profile); value > 0 {
			fields.OriginalPrice = value
			break
		}
	}

	for _, s := range imageChain {
		if value := s.resolve(doc, profile); value != "" {
			fields.ImageURL = value
			break
		}
	}

	// An original price below the current price is bad data, not a discount
	if fields.OriginalPrice > 0 && fields.OriginalPrice < fields.CurrentPrice {
		e.logger.Debug("Dropping original price below current price", map[string]interface{}{
			"url":            url,
			"current_price":  fields.CurrentPrice,
			"original_price": fields.OriginalPrice,
		})
		fields.OriginalPrice = 0
	}

	if fields.CurrentPrice == 0 {
		e.logger.Warn("No price found on page, reporting price unknown", map[string]interface{}{
			"url":    url,
			"source": profile.SourceID,
		})
	} else {
		e.logger.Debug("Fields extracted", map[string]interface{}{
			"url":            url,
			"source":         profile.SourceID,
			"title_strategy": titleStrategy,
			"price_strategy": priceStrategy,
			"price":          fields.CurrentPrice,
		})
	}

	return fields
}

// cleanTitle collapses whitespace and strips the profile's known brand
// suffixes and prefixes. Removal is exact-substring and order-independent.
func cleanTitle(title string, profile brands.Profile) string {
	title = utils.CollapseWhitespace(title)
	for _, trim := range profile.TitleTrim {
		title = strings.ReplaceAll(title, trim, "")
	}
	return strings.TrimSpace(title)
}
