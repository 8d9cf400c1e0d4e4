package extractor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fiyattakip/pkg/utils"
)

// bodyScanLimit bounds the full-text price scan; prices on product pages sit
// near the top of the markup and scanning megabytes of footer scripts buys
// nothing.
const bodyScanLimit = 10000

// StructuredProduct is one schema.org Product block lifted out of the page's
// JSON-LD markup, reduced to the fields this pipeline consumes.
type StructuredProduct struct {
	Name      string
	Image     string
	Price     float64
	HighPrice float64
}

// Document wraps the parsed page for selector-based extraction. Structured
// data blocks are collected eagerly, in document order, with malformed blocks
// skipped: one broken JSON-LD script must not cost us the others.
type Document struct {
	doc      *goquery.Document
	products []StructuredProduct
	bodyText string
	bodyOnce bool
}

// NewDocument parses raw HTML into a queryable document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	d := &Document{doc: doc}
	d.collectStructuredData()
	return d, nil
}

// FirstProduct returns the first valid structured product block in document
// order, or false when the page carries none.
func (d *Document) FirstProduct() (StructuredProduct, bool) {
	if len(d.products) == 0 {
		return StructuredProduct{}, false
	}
	return d.products[0], true
}

// MetaContent returns the content attribute of the first matching meta tag.
func (d *Document) MetaContent(property string) string {
	content, _ := d.doc.Find("meta[property='" + property + "']").First().Attr("content")
	return strings.TrimSpace(content)
}

// SelectorText tries each selector in order and returns the first non-empty
// trimmed text.
func (d *Document) SelectorText(selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(d.doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// SelectorImage tries each selector in order and returns the first usable
// image URL, preferring lazy-load attributes over src: deferred-loaded
// sources usually carry the full-resolution asset.
func (d *Document) SelectorImage(selectors []string) string {
	for _, selector := range selectors {
		sel := d.doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		for _, attr := range []string{"data-original", "data-src", "src", "content"} {
			if value, ok := sel.Attr(attr); ok {
				if value = strings.TrimSpace(value); value != "" {
					return value
				}
			}
		}
	}
	return ""
}

// Heading returns the text of the first top-level heading.
func (d *Document) Heading() string {
	return strings.TrimSpace(d.doc.Find("h1").First().Text())
}

// Title returns the raw document title.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// BodyText returns the page's visible text, truncated to the scan limit.
func (d *Document) BodyText() string {
	if !d.bodyOnce {
		text := d.doc.Find("body").Text()
		if len(text) > bodyScanLimit {
			text = text[:bodyScanLimit]
		}
		d.bodyText = text
		d.bodyOnce = true
	}
	return d.bodyText
}

// collectStructuredData walks every JSON-LD script on the page and keeps the
// product-typed blocks. Parse failures are swallowed per block.
func (d *Document) collectStructuredData() {
	d.doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		d.walkStructuredValue(payload)
	})
}

func (d *Document) walkStructuredValue(value interface{}) {
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			d.walkStructuredValue(item)
		}
	case map[string]interface{}:
		if isProductType(v["@type"]) {
			if product, ok := parseStructuredProduct(v); ok {
				d.products = append(d.products, product)
			}
			return
		}
		if graph, ok := v["@graph"]; ok {
			d.walkStructuredValue(graph)
		}
	}
}

func isProductType(typeValue interface{}) bool {
	switch t := typeValue.(type) {
	case string:
		return strings.EqualFold(t, "Product")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Product") {
				return true
			}
		}
	}
	return false
}

func parseStructuredProduct(block map[string]interface{}) (StructuredProduct, bool) {
	product := StructuredProduct{
		Name:  stringValue(block["name"]),
		Image: imageValue(block["image"]),
	}

	if offer, ok := firstOffer(block["offers"]); ok {
		product.Price = numericValue(offer["price"])
		if product.Price == 0 {
			product.Price = numericValue(offer["lowPrice"])
		}
		product.HighPrice = numericValue(offer["highPrice"])
	}

	if product.Name == "" && product.Price == 0 && product.Image == "" {
		return StructuredProduct{}, false
	}
	return product, true
}

// firstOffer accepts both a single offer object and an offer array.
func firstOffer(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case map[string]interface{}:
		return v, true
	case []interface{}:
		for _, item := range v {
			if offer, ok := item.(map[string]interface{}); ok {
				return offer, true
			}
		}
	}
	return nil, false
}

func stringValue(value interface{}) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// imageValue handles the three shapes schema.org image fields come in: a
// plain URL string, an array of either, or an ImageObject.
func imageValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		if len(v) > 0 {
			return imageValue(v[0])
		}
	case map[string]interface{}:
		if url := stringValue(v["url"]); url != "" {
			return url
		}
		return stringValue(v["contentUrl"])
	}
	return ""
}

func numericValue(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return v
	case string:
		s := strings.TrimSpace(v)
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed >= 0 {
			return parsed
		}
		// Localized price text inside structured data is rare but happens
		return ParsePrice(s)
	}
	return 0
}

// absoluteURLOnly filters out relative asset paths; used by the generic
// image fallback where a relative src cannot be trusted to resolve.
func absoluteURLOnly(url string) string {
	if utils.IsAbsoluteURL(url) {
		return url
	}
	return ""
}
