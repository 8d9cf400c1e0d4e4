package firecrawl

import (
	"context"
	"fmt"

	"github.com/mendableai/firecrawl-go"

	"fiyattakip/internal/brands"
	"fiyattakip/internal/config"
	"fiyattakip/internal/extractor"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

// FirecrawlScraper implements the Scraper interface using the Firecrawl API.
// It trades the local browser for a remote render, then runs the same
// extraction pipeline over the returned HTML.
type FirecrawlScraper struct {
	config    *config.Config
	app       *firecrawl.FirecrawlApp
	extractor *extractor.Engine
	logger    types.Logger
}

// NewFirecrawlScraper creates a new Firecrawl scraper instance
func NewFirecrawlScraper(cfg *config.Config) *FirecrawlScraper {
	logger := logging.GetGlobalLogger()

	app, err := firecrawl.NewFirecrawlApp(
		cfg.Firecrawl.APIKey,
		cfg.Firecrawl.APIURL,
	)
	if err != nil {
		logger.Error("Failed to initialize Firecrawl", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	logger.Info("Firecrawl scraper initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})

	return &FirecrawlScraper{
		config:    cfg,
		app:       app,
		extractor: extractor.NewEngine(logger),
		logger:    logger,
	}
}

// Track fetches the product page through Firecrawl and extracts a snapshot
func (f *FirecrawlScraper) Track(ctx context.Context, url string, options *models.TrackOptions) *models.ProductSnapshot {
	profile := brands.Match(utils.Hostname(url))

	target := url
	if profile.SourceID == "zara" {
		target = utils.CanonicalZaraURL(url)
	}

	html, err := f.fetchHTML(ctx, target)
	if err != nil {
		f.logger.Warn("Firecrawl acquisition failed", map[string]interface{}{
			"url":    url,
			"source": profile.SourceID,
			"error":  err.Error(),
		})
		return models.FailedSnapshot(url)
	}

	doc, err := extractor.NewDocument(html)
	if err != nil {
		f.logger.Warn("Failed to parse Firecrawl HTML", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return models.FailedSnapshot(url)
	}

	fields := f.extractor.Extract(doc, profile, target)
	return extractor.Assemble(fields, profile.SourceID, target)
}

// fetchHTML scrapes the URL via the Firecrawl API and returns raw HTML
func (f *FirecrawlScraper) fetchHTML(ctx context.Context, url string) (string, error) {
	params := &firecrawl.ScrapeParams{
		Formats: []string{"html"},
	}

	result, err := f.app.ScrapeURL(url, params)
	if err != nil {
		return "", utils.NewAcquisitionError(fmt.Sprintf("firecrawl scrape failed: %v", err))
	}

	if result == nil || result.HTML == "" {
		return "", utils.NewAcquisitionError("firecrawl returned empty HTML")
	}

	return result.HTML, nil
}

// Cleanup releases resources; Firecrawl holds no local state
func (f *FirecrawlScraper) Cleanup() {}

// IsHealthy returns true when the scraper has a configured client
func (f *FirecrawlScraper) IsHealthy() bool {
	return f.app != nil && f.config.Firecrawl.APIKey != ""
}
