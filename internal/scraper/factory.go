package scraper

import (
	"fmt"

	"fiyattakip/internal/config"
	"fiyattakip/internal/scraper/engines/firecrawl"
	"fiyattakip/internal/scraper/engines/headed"
)

// DefaultScraperFactory implements ScraperFactory
type DefaultScraperFactory struct {
	config *config.Config
}

// NewScraperFactory creates a new scraper factory
func NewScraperFactory(cfg *config.Config) ScraperFactory {
	return &DefaultScraperFactory{
		config: cfg,
	}
}

// CreateScraper creates a new scraper instance for the given engine
func (f *DefaultScraperFactory) CreateScraper(engine string) (Scraper, error) {
	switch engine {
	case "firecrawl":
		return firecrawl.NewFirecrawlScraper(f.config), nil
	case "headed", "auto", "":
		return headed.NewRodScraper(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported scraping engine: %s", engine)
	}
}

// GetSupportedEngines returns a list of supported engine types
func (f *DefaultScraperFactory) GetSupportedEngines() []string {
	return []string{"firecrawl", "headed", "auto"}
}
