package headed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiyattakip/internal/brands"
	"fiyattakip/internal/config"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

type fakeProvider struct {
	html         string
	err          error
	acquiredURLs []string
}

func (f *fakeProvider) Acquire(_ context.Context, url string, _ brands.Profile) (*models.RawPage, error) {
	f.acquiredURLs = append(f.acquiredURLs, url)
	if f.err != nil {
		return nil, f.err
	}
	return &models.RawPage{HTML: f.html, URL: url}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestTrackAcquisitionFailureYieldsSentinel(t *testing.T) {
	provider := &fakeProvider{err: utils.NewNavigationError("timed out")}
	scraper := NewRodScraperWithProvider(testConfig(t), provider)

	url := "https://www.trendyol.com/marka/elbise-p-123"
	snapshot := scraper.Track(context.Background(), url, nil)

	require.NotNil(t, snapshot)
	assert.True(t, snapshot.Error)
	assert.Equal(t, models.FallbackTitle, snapshot.Title)
	assert.Zero(t, snapshot.CurrentPrice)
	assert.Equal(t, "unknown", snapshot.Source)
	assert.Empty(t, snapshot.ImageURL)
	assert.Equal(t, url, snapshot.URL)
}

func TestTrackSuccessAssemblesSnapshot(t *testing.T) {
	provider := &fakeProvider{html: `<html><head>
<script type="application/ld+json">
{"@type": "Product", "name": "Kadın Midi Elbise", "image": "https://cdn.test/elbise.jpg",
 "offers": {"price": "749.90", "highPrice": "999.90"}}
</script>
</head><body></body></html>`}
	scraper := NewRodScraperWithProvider(testConfig(t), provider)

	snapshot := scraper.Track(context.Background(), "https://www.trendyol.com/marka/elbise-p-123", nil)

	require.NotNil(t, snapshot)
	assert.False(t, snapshot.Error)
	assert.Equal(t, "Kadın Midi Elbise", snapshot.Title)
	assert.InDelta(t, 749.9, snapshot.CurrentPrice, 0.001)
	assert.InDelta(t, 999.9, snapshot.OriginalPrice, 0.001)
	assert.Equal(t, "https://cdn.test/elbise.jpg", snapshot.ImageURL)
	assert.Equal(t, "trendyol", snapshot.Source)
	assert.Equal(t, "Dress", snapshot.Category)
	assert.Equal(t, models.GenderFemale, snapshot.Gender)
	assert.True(t, snapshot.InStock)
	assert.True(t, snapshot.HasDiscount())
}

func TestTrackCanonicalizesZaraURLs(t *testing.T) {
	provider := &fakeProvider{html: "<html><body></body></html>"}
	scraper := NewRodScraperWithProvider(testConfig(t), provider)

	snapshot := scraper.Track(context.Background(), "https://www.zara.com/share?v1=331708078", nil)

	require.Len(t, provider.acquiredURLs, 1)
	assert.Equal(t, "https://www.zara.com/tr/tr/urun-p331708078.html", provider.acquiredURLs[0])
	assert.Equal(t, "zara", snapshot.Source)
	assert.Equal(t, snapshot.URL, provider.acquiredURLs[0])
}

func TestTrackPriceUnknownIsNotAnError(t *testing.T) {
	provider := &fakeProvider{html: `<html><head>
<meta property="og:title" content="Basic Tişört">
</head><body><p>Fiyat bilgisi yok</p></body></html>`}
	scraper := NewRodScraperWithProvider(testConfig(t), provider)

	snapshot := scraper.Track(context.Background(), "https://www.koton.com/basic-tisort", nil)

	require.NotNil(t, snapshot)
	assert.False(t, snapshot.Error, "missing price degrades, it does not fail the scrape")
	assert.Zero(t, snapshot.CurrentPrice)
	assert.Equal(t, "Basic Tişört", snapshot.Title)
	assert.Equal(t, "koton", snapshot.Source)
}

func TestTrackAcquireCalledOncePerScrape(t *testing.T) {
	provider := &fakeProvider{err: utils.NewAcquisitionError("blocked")}
	scraper := NewRodScraperWithProvider(testConfig(t), provider)

	scraper.Track(context.Background(), "https://www.koton.com/p1", nil)
	scraper.Track(context.Background(), "https://www.koton.com/p2", nil)

	assert.Len(t, provider.acquiredURLs, 2)
}
