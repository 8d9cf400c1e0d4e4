package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiyattakip/internal/brands"
	"fiyattakip/internal/logging"
	"fiyattakip/pkg/models"
)

func newTestEngine() *Engine {
	return NewEngine(logging.GetGlobalLogger())
}

const structuredDataPage = `<!DOCTYPE html>
<html><head>
<title>Ignored Marketing Title | Shop</title>
<script type="application/ld+json">
{
  "@type": "Product",
  "name": "Test Shirt",
  "image": ["https://x/img.jpg"],
  "offers": {"price": "199.90", "highPrice": "299.90"}
}
</script>
</head><body><h1>Wrong Heading</h1></body></html>`

func TestExtractStructuredData(t *testing.T) {
	doc, err := NewDocument(structuredDataPage)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.Equal(t, "Test Shirt", fields.Title)
	assert.InDelta(t, 199.9, fields.CurrentPrice, 0.001)
	assert.InDelta(t, 299.9, fields.OriginalPrice, 0.001)
	assert.Equal(t, "https://x/img.jpg", fields.ImageURL)
}

func TestExtractBodyTextPriceFallback(t *testing.T) {
	html := `<html><head><title>Yazlık Elbise - Moda Store</title></head>
<body><p>Sepete özel fiyat 1.499 TL, kaçırmayın!</p></body></html>`

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.InDelta(t, 1499, fields.CurrentPrice, 0.001)
	// No h1, no meta: document title left of the separator wins
	assert.Equal(t, "Yazlık Elbise", fields.Title)
	assert.Zero(t, fields.OriginalPrice)
	assert.Empty(t, fields.ImageURL)
}

func TestExtractBodyScanIsBounded(t *testing.T) {
	padding := strings.Repeat("x ", bodyScanLimit)
	html := "<html><body><p>" + padding + "9.999 TL</p></body></html>"

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.Zero(t, fields.CurrentPrice, "price beyond the scan window must not be found")
}

func TestExtractIntegrityRuleDropsBogusOriginalPrice(t *testing.T) {
	// originalPrice below currentPrice is not a discount; drop it
	html := `<html><head>
<script type="application/ld+json">
{"@type": "Product", "name": "Kaban", "offers": {"price": "500.00", "highPrice": "100.00"}}
</script>
</head><body></body></html>`

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.InDelta(t, 500, fields.CurrentPrice, 0.001)
	assert.Zero(t, fields.OriginalPrice)
}

func TestExtractMalformedStructuredDataIsSkipped(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">
{"@type": "Product", "name": "Deri Çanta", "offers": {"price": "899.90"}}
</script>
</head><body></body></html>`

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.Equal(t, "Deri Çanta", fields.Title)
	assert.InDelta(t, 899.9, fields.CurrentPrice, 0.001)
}

func TestExtractBrandSelectors(t *testing.T) {
	profile := brands.Profile{
		SourceID: "teststore",
		Selectors: brands.SelectorSet{
			Title:         []string{".pd-name"},
			Price:         []string{".pd-price"},
			OriginalPrice: []string{".pd-old-price"},
			Image:         []string{".pd-image img"},
		},
		TitleTrim: []string{" - TestStore"},
	}

	html := `<html><body>
<div class="pd-name">Kapüşonlu  Sweatshirt - TestStore</div>
<div class="pd-price">349,99 TL</div>
<div class="pd-old-price">499,99 TL</div>
<div class="pd-image"><img data-src="https://cdn.test/sweat.jpg" src="data:image/gif;base64,x"></div>
</body></html>`

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, profile, "https://teststore.com/p")

	assert.Equal(t, "Kapüşonlu Sweatshirt", fields.Title)
	assert.InDelta(t, 349.99, fields.CurrentPrice, 0.001)
	assert.InDelta(t, 499.99, fields.OriginalPrice, 0.001)
	assert.Equal(t, "https://cdn.test/sweat.jpg", fields.ImageURL)
}

func TestExtractOgMetaFallbacks(t *testing.T) {
	html := `<html><head>
<meta property="og:title" content="Oversize Tişört">
<meta property="og:image" content="https://cdn.test/tee.jpg">
</head><body></body></html>`

	doc, err := NewDocument(html)
	require.NoError(t, err)

	fields := newTestEngine().Extract(doc, brands.Unknown, "https://example.com/p")

	assert.Equal(t, "Oversize Tişört", fields.Title)
	assert.Equal(t, "https://cdn.test/tee.jpg", fields.ImageURL)
	assert.Zero(t, fields.CurrentPrice)
}

func TestAssembleSuccessInvariants(t *testing.T) {
	fields := Fields{
		Title:         "Test Shirt",
		CurrentPrice:  199.9,
		OriginalPrice: 299.9,
		ImageURL:      "https://x/img.jpg",
	}

	snapshot := Assemble(fields, "zara", "https://www.zara.com/tr/tr/urun-p1234.html")

	assert.False(t, snapshot.Error)
	assert.Equal(t, "Test Shirt", snapshot.Title)
	assert.Equal(t, "zara", snapshot.Source)
	assert.True(t, snapshot.InStock)
	assert.GreaterOrEqual(t, snapshot.CurrentPrice, 0.0)
	if snapshot.OriginalPrice > 0 {
		assert.GreaterOrEqual(t, snapshot.OriginalPrice, snapshot.CurrentPrice)
	}
	assert.True(t, snapshot.HasDiscount())
}

func TestAssembleEmptyTitleFallsBack(t *testing.T) {
	snapshot := Assemble(Fields{}, "unknown", "https://example.com/p")

	assert.Equal(t, models.FallbackTitle, snapshot.Title)
	assert.False(t, snapshot.Error, "missing fields degrade, they do not fail the snapshot")
	assert.Equal(t, "General", snapshot.Category)
	assert.Equal(t, models.GenderUnisex, snapshot.Gender)
}
