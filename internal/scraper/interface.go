package scraper

import (
	"context"

	"fiyattakip/pkg/models"
)

// Scraper defines the interface for all scraping engines. Track always
// returns a usable snapshot: acquisition failures surface as the sentinel
// snapshot with the Error flag set, never as a nil result.
type Scraper interface {
	// Track fetches the product page at the given URL and extracts a snapshot
	Track(ctx context.Context, url string, options *models.TrackOptions) *models.ProductSnapshot

	// Cleanup releases any resources used by the scraper
	Cleanup()

	// IsHealthy returns true if the scraper is healthy and ready to process jobs
	IsHealthy() bool
}

// ScraperFactory creates scrapers based on engine type
type ScraperFactory interface {
	// CreateScraper creates a new scraper instance for the given engine
	CreateScraper(engine string) (Scraper, error)

	// GetSupportedEngines returns a list of supported engine types
	GetSupportedEngines() []string
}
