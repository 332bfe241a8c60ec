package browser

import (
	"context"
	"fmt"
	"time"

	"StoreScraper/internal/crawler"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sirupsen/logrus"
)

// Options configures the headless browser used to render store pages.
type Options struct {
	Headless       bool
	UserAgent      string
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
}

// Browser renders pages through a single Chromium instance; every Open gets its own stealth tab.
type Browser struct {
	browser *rod.Browser
	opts    Options
	log     logrus.FieldLogger
}

// Launch starts Chromium and connects to it.
func Launch(opts Options, log logrus.FieldLogger) (*Browser, error) {
	u, err := launcher.New().Headless(opts.Headless).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	log.WithField("headless", opts.Headless).Info("Browser started")
	return &Browser{browser: b, opts: opts, log: log}, nil
}

// Open navigates a fresh tab to url and waits for the load event.
func (b *Browser) Open(ctx context.Context, url string) (crawler.Page, error) {
	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("open tab: %w", err)
	}
	page = page.Context(ctx)

	if err := b.prepare(page); err != nil {
		_ = page.Close()
		return nil, err
	}

	nav := page.Timeout(b.opts.Timeout)
	defer nav.CancelTimeout()

	if err := nav.Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait for load of %s: %w", url, err)
	}

	b.log.WithField("url", url).Debug("Page loaded")
	return &tab{page: page}, nil
}

func (b *Browser) prepare(page *rod.Page) error {
	if b.opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.opts.UserAgent}); err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}
	if b.opts.ViewportWidth > 0 && b.opts.ViewportHeight > 0 {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             b.opts.ViewportWidth,
			Height:            b.opts.ViewportHeight,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return fmt.Errorf("set viewport: %w", err)
		}
	}
	return nil
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}
	return b.browser.Close()
}

// tab adapts a rod page to crawler.Page.
type tab struct {
	page *rod.Page
}

func (t *tab) HTML() (string, error) {
	html, err := t.page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page HTML: %w", err)
	}
	return html, nil
}

// Screenshot captures the current viewport as PNG.
func (t *tab) Screenshot() ([]byte, error) {
	data, err := t.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

func (t *tab) Close() error {
	return t.page.Close()
}
