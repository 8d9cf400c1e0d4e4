package captcha

import (
	"context"
	"fmt"
	"strings"
	"time"

	api2captcha "github.com/2captcha/2captcha-go"

	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/internal/logging/types"
)

// CaptchaSolver interface for different captcha solving services
type CaptchaSolver interface {
	SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error)
	SolveTurnstile(ctx context.Context, siteKey, pageURL string) (string, error)
	IsHealthy() bool
}

// TwoCaptchaSolver implements 2CAPTCHA service integration using official library
type TwoCaptchaSolver struct {
	config *config.Config
	client *api2captcha.Client
	logger types.Logger
}

// NewTwoCaptchaSolver creates a new 2CAPTCHA solver instance
func NewTwoCaptchaSolver(cfg *config.Config) *TwoCaptchaSolver {
	logger := logging.GetGlobalLogger().WithField("component", "2captcha")

	if cfg.Scraper.Captcha.APIKey == "" {
		logger.Warn("2CAPTCHA API key not configured, captcha solving will be disabled")
	}

	client := api2captcha.NewClient(cfg.Scraper.Captcha.APIKey)
	client.DefaultTimeout = int(cfg.Scraper.Captcha.Timeout.Seconds())
	client.RecaptchaTimeout = int(cfg.Scraper.Captcha.Timeout.Seconds())
	client.PollingInterval = 5

	return &TwoCaptchaSolver{
		config: cfg,
		client: client,
		logger: logger,
	}
}

// SolveRecaptcha solves a reCAPTCHA challenge using 2CAPTCHA service
func (tcs *TwoCaptchaSolver) SolveRecaptcha(ctx context.Context, siteKey, pageURL string) (string, error) {
	if !tcs.config.Scraper.Captcha.EnableAutoSolve {
		return "", fmt.Errorf("captcha auto-solve is disabled")
	}

	if tcs.config.Scraper.Captcha.APIKey == "" {
		return "", fmt.Errorf("2CAPTCHA API key not configured")
	}

	tcs.logger.Info("Starting reCAPTCHA solving", map[string]interface{}{
		"site_key": siteKey,
		"page_url": pageURL,
	})

	startTime := time.Now()

	challenge := api2captcha.ReCaptcha{
		SiteKey: siteKey,
		Url:     pageURL,
	}

	code, _, err := tcs.client.Solve(challenge.ToRequest())
	if err != nil {
		tcs.logger.Error("Failed to solve reCAPTCHA", map[string]interface{}{
			"page_url": pageURL,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("failed to solve reCAPTCHA: %w", err)
	}

	tcs.logger.Info("Successfully solved reCAPTCHA", map[string]interface{}{
		"page_url":     pageURL,
		"solving_time": time.Since(startTime).String(),
	})

	return code, nil
}

// SolveTurnstile solves a Cloudflare Turnstile challenge using 2CAPTCHA service
func (tcs *TwoCaptchaSolver) SolveTurnstile(ctx context.Context, siteKey, pageURL string) (string, error) {
	if !tcs.config.Scraper.Captcha.EnableAutoSolve {
		return "", fmt.Errorf("captcha auto-solve is disabled")
	}

	if tcs.config.Scraper.Captcha.APIKey == "" {
		return "", fmt.Errorf("2CAPTCHA API key not configured")
	}

	tcs.logger.Info("Starting Cloudflare Turnstile solving", map[string]interface{}{
		"site_key": siteKey,
		"page_url": pageURL,
	})

	startTime := time.Now()

	challenge := api2captcha.CloudflareTurnstile{
		SiteKey: siteKey,
		Url:     pageURL,
	}

	code, _, err := tcs.client.Solve(challenge.ToRequest())
	if err != nil {
		tcs.logger.Error("Failed to solve Turnstile challenge", map[string]interface{}{
			"page_url": pageURL,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("failed to solve Turnstile challenge: %w", err)
	}

	tcs.logger.Info("Successfully solved Turnstile challenge", map[string]interface{}{
		"page_url":     pageURL,
		"solving_time": time.Since(startTime).String(),
	})

	return code, nil
}

// IsHealthy reports whether the solver can accept challenges
func (tcs *TwoCaptchaSolver) IsHealthy() bool {
	return tcs.config.Scraper.Captcha.APIKey != "" && tcs.config.Scraper.Captcha.EnableAutoSolve
}

// IsChallengeMarkup reports whether the HTML looks like a bot-check
// interstitial rather than a product page.
func IsChallengeMarkup(html string) bool {
	lowered := strings.ToLower(html)
	markers := []string{
		"cf-turnstile",
		"challenge-platform",
		"g-recaptcha",
		"just a moment...",
		"checking your browser",
	}
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// ExtractSiteKey pulls the data-sitekey attribute out of challenge markup
func ExtractSiteKey(html string) string {
	const attr = `data-sitekey="`
	idx := strings.Index(html, attr)
	if idx < 0 {
		return ""
	}
	rest := html[idx+len(attr):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}
