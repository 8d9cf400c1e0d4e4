package headed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"fiyattakip/pkg/utils"
)

// PageSession wraps a single browser tab for one acquisition. Close is
// idempotent so the deferred cleanup and error paths never double-close.
type PageSession struct {
	page      *rod.Page
	manager   *BrowserManager
	router    *rod.HijackRouter
	closeOnce sync.Once
}

func newPageSession(page *rod.Page, manager *BrowserManager) *PageSession {
	return &PageSession{
		page:    page,
		manager: manager,
	}
}

// BlockHeavyResources aborts image, media and font requests so product
// pages settle faster. Non-fatal on setup failure.
func (s *PageSession) BlockHeavyResources() {
	router := s.page.HijackRequests()
	err := router.Add("*", "", func(ctx *rod.Hijack) {
		switch ctx.Request.Type() {
		case proto.NetworkResourceTypeImage,
			proto.NetworkResourceTypeMedia,
			proto.NetworkResourceTypeFont:
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		default:
			ctx.ContinueRequest(&proto.FetchContinueRequest{})
		}
	})
	if err != nil {
		s.manager.logger.Warn("Failed to install resource blocker", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.router = router
	go router.Run()
}

// SetGeoCookies pins the storefront to the Turkish market before the first
// navigation. Inditex brands redirect to a region chooser without these.
// Failures are swallowed; the page is still usable, just possibly in the
// wrong locale.
func (s *PageSession) SetGeoCookies(rawURL string) {
	hostname := utils.Hostname(rawURL)
	if hostname == "" {
		return
	}
	domain := "." + hostname

	cookies := []*proto.NetworkCookieParam{
		{Name: "country", Value: "tr", Domain: domain, Path: "/"},
		{Name: "locale", Value: "tr_TR", Domain: domain, Path: "/"},
		{Name: "storepath", Value: "tr%2Ftr", Domain: domain, Path: "/"},
	}

	if err := s.page.SetCookies(cookies); err != nil {
		s.manager.logger.Debug("Failed to set geo cookies", map[string]interface{}{
			"error":    err.Error(),
			"hostname": hostname,
		})
	}
}

// Navigate loads the URL and waits for DOMContentLoaded within the timeout.
// A page that never reaches DOMContentLoaded is an acquisition failure.
func (s *PageSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := rod.Try(func() {
		page := s.page.Context(navCtx)
		wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
		page.MustNavigate(url)
		wait()
	})
	if err != nil {
		return utils.NewNavigationError(fmt.Sprintf("failed to navigate to %s: %v", url, err))
	}

	s.manager.logger.Debug("Successfully navigated to URL", map[string]interface{}{
		"url": url,
	})
	return nil
}

// WaitReady waits for a product heading or price node to render. Timing
// out here is not fatal; extraction proceeds on whatever markup arrived.
func (s *PageSession) WaitReady(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := rod.Try(func() {
		s.page.Context(ctx).MustElement("h1, [class*='price']")
	})
	if err != nil {
		s.manager.logger.Debug("Readiness selector did not appear, extracting anyway", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// InjectTurnstileSolution writes the solved token into the Turnstile
// response inputs and fires the widget callback when one is declared.
func (s *PageSession) InjectTurnstileSolution(solution string) error {
	js := fmt.Sprintf(`() => {
		let responseElements = document.querySelectorAll('input[name*="turnstile"], input[name*="cf-turnstile"]');
		for (let element of responseElements) {
			element.value = '%s';
		}

		let widgets = document.querySelectorAll('[data-sitekey]');
		for (let widget of widgets) {
			let callback = widget.getAttribute('data-callback');
			if (callback && typeof window[callback] === 'function') {
				window[callback]('%s');
				break;
			}
		}
	}`, solution, solution)

	err := rod.Try(func() {
		s.page.MustEval(js)
	})
	if err != nil {
		return fmt.Errorf("failed to inject Turnstile solution: %w", err)
	}

	s.manager.logger.Debug("Turnstile solution injected successfully")
	return nil
}

// HTML returns the full serialized DOM of the current page
func (s *PageSession) HTML() (string, error) {
	html, err := s.page.HTML()
	if err != nil {
		return "", utils.NewAcquisitionError(fmt.Sprintf("failed to read page HTML: %v", err))
	}
	return html, nil
}

// Page exposes the underlying tab for captcha injection
func (s *PageSession) Page() *rod.Page {
	return s.page
}

// Close stops the hijack router and closes the tab exactly once
func (s *PageSession) Close() {
	s.closeOnce.Do(func() {
		if s.router != nil {
			_ = s.router.Stop()
		}
		if err := rod.Try(func() { s.page.MustClose() }); err != nil {
			s.manager.logger.Debug("Failed to close page", map[string]interface{}{
				"error": err.Error(),
			})
		}
	})
}
