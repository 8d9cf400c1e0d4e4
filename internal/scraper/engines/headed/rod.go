package headed

import (
	"context"
	"fmt"
	"time"

	"fiyattakip/internal/brands"
	"fiyattakip/internal/config"
	"fiyattakip/internal/extractor"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
	"fiyattakip/internal/scraper/captcha"
	"fiyattakip/pkg/models"
	"fiyattakip/pkg/utils"
)

// PageProvider acquires the rendered HTML for a product URL. Errors are
// acquisition-class: the caller maps them to the failure snapshot.
type PageProvider interface {
	Acquire(ctx context.Context, url string, profile brands.Profile) (*models.RawPage, error)
}

// RodScraper scrapes product pages using the Rod headless browser engine
type RodScraper struct {
	config    *config.Config
	manager   *BrowserManager
	provider  PageProvider
	extractor *extractor.Engine
	logger    types.Logger
}

// NewRodScraper creates a new Rod-based scraper
func NewRodScraper(cfg *config.Config) *RodScraper {
	logger := logging.GetGlobalLogger()
	manager := NewBrowserManager(cfg)

	var solver captcha.CaptchaSolver
	if cfg.Scraper.Captcha.APIKey != "" {
		solver = captcha.NewTwoCaptchaSolver(cfg)
	}

	return &RodScraper{
		config:  cfg,
		manager: manager,
		provider: &sessionProvider{
			config:  cfg,
			manager: manager,
			solver:  solver,
			logger:  logger,
		},
		extractor: extractor.NewEngine(logger),
		logger:    logger,
	}
}

// NewRodScraperWithProvider creates a scraper with a custom page source
func NewRodScraperWithProvider(cfg *config.Config, provider PageProvider) *RodScraper {
	logger := logging.GetGlobalLogger()
	return &RodScraper{
		config:    cfg,
		provider:  provider,
		extractor: extractor.NewEngine(logger),
		logger:    logger,
	}
}

// Track fetches the product page and extracts a snapshot. Acquisition
// failures yield the sentinel snapshot; extraction gaps degrade per field.
func (r *RodScraper) Track(ctx context.Context, url string, options *models.TrackOptions) *models.ProductSnapshot {
	profile := brands.Match(utils.Hostname(url))

	target := url
	if profile.SourceID == "zara" {
		target = utils.CanonicalZaraURL(url)
	}

	acquireCtx := ctx
	if options != nil && options.Timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	raw, err := r.provider.Acquire(acquireCtx, target, profile)
	if err != nil {
		r.logger.Warn("Page acquisition failed", map[string]interface{}{
			"url":    url,
			"source": profile.SourceID,
			"error":  err.Error(),
		})
		return models.FailedSnapshot(url)
	}

	doc, err := extractor.NewDocument(raw.HTML)
	if err != nil {
		r.logger.Warn("Failed to parse page HTML", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return models.FailedSnapshot(url)
	}

	fields := r.extractor.Extract(doc, profile, target)
	return extractor.Assemble(fields, profile.SourceID, target)
}

// Cleanup releases browser resources
func (r *RodScraper) Cleanup() {
	if r.manager != nil {
		r.manager.Cleanup()
	}
}

// IsHealthy returns true if the scraper can serve requests
func (r *RodScraper) IsHealthy() bool {
	if r.manager == nil {
		return r.provider != nil
	}
	return r.manager.IsHealthy()
}

// sessionProvider acquires pages through pooled browser sessions
type sessionProvider struct {
	config  *config.Config
	manager *BrowserManager
	solver  captcha.CaptchaSolver
	logger  types.Logger
}

func (p *sessionProvider) Acquire(ctx context.Context, url string, profile brands.Profile) (*models.RawPage, error) {
	session, err := p.manager.NewSession(ctx)
	if err != nil {
		return nil, utils.NewAcquisitionError(fmt.Sprintf("failed to open browser session: %v", err))
	}
	defer session.Close()

	if p.config.Scraper.BlockResources {
		session.BlockHeavyResources()
	}
	if profile.RequiresGeoCookies {
		session.SetGeoCookies(url)
	}

	if err := session.Navigate(ctx, url, p.config.Scraper.NavigationTimeout); err != nil {
		return nil, err
	}

	session.WaitReady(p.config.Scraper.ReadinessTimeout)

	html, err := session.HTML()
	if err != nil {
		return nil, err
	}

	if captcha.IsChallengeMarkup(html) {
		html = p.resolveChallenge(ctx, session, url, html)
	}

	return &models.RawPage{HTML: html, URL: url}, nil
}

// resolveChallenge attempts a best-effort Turnstile solve. On any failure
// the original markup is returned and extraction degrades naturally.
func (p *sessionProvider) resolveChallenge(ctx context.Context, session *PageSession, url, html string) string {
	if p.solver == nil || !p.solver.IsHealthy() {
		p.logger.Warn("Challenge page detected but captcha solving is unavailable", map[string]interface{}{
			"url": url,
		})
		return html
	}

	siteKey := captcha.ExtractSiteKey(html)
	if siteKey == "" {
		p.logger.Warn("Challenge page detected but no site key found", map[string]interface{}{
			"url": url,
		})
		return html
	}

	solution, err := p.solver.SolveTurnstile(ctx, siteKey, url)
	if err != nil {
		p.logger.Warn("Captcha solve failed, keeping challenge markup", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return html
	}

	if err := session.InjectTurnstileSolution(solution); err != nil {
		p.logger.Warn("Captcha solution injection failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return html
	}

	// Give the page a moment to pass the challenge and render
	time.Sleep(2 * time.Second)
	session.WaitReady(p.config.Scraper.ReadinessTimeout)

	solved, err := session.HTML()
	if err != nil {
		return html
	}
	return solved
}
