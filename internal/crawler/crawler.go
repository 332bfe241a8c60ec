package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"StoreScraper/internal/digest"
	"StoreScraper/internal/models"
	"StoreScraper/internal/scraper"

	"github.com/sirupsen/logrus"
)

// Page is a rendered document held open by the Renderer.
type Page interface {
	HTML() (string, error)
	Screenshot() ([]byte, error)
	Close() error
}

// Renderer produces fully rendered pages, typically through a headless browser.
type Renderer interface {
	Open(ctx context.Context, url string) (Page, error)
}

// Downloader saves a remote file to a local path.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// Catalog records processed products. It may be nil.
type Catalog interface {
	SaveProduct(ctx context.Context, entry models.CatalogEntry) error
}

// Media lists the file extensions collected per media kind.
type Media struct {
	Images    []string
	Videos    []string
	Documents []string
}

// Options controls a crawl.
type Options struct {
	BaseURL         string
	MaxPages        int
	OutputDir       string
	Workers         int
	Delay           time.Duration
	ProductMarker   string
	IncludePatterns []string
	ExcludePatterns []string
	Categories      []string
	Media           Media
}

// Summary reports what a run did.
type Summary struct {
	PagesCrawled      int
	ProductsFound     int
	ProductsProcessed int
	ProductsFailed    int
	MediaDownloaded   int
}

// Crawler discovers product pages on one store and exports them to disk.
type Crawler struct {
	opts       Options
	renderer   Renderer
	downloader Downloader
	catalog    Catalog
	log        logrus.FieldLogger
}

// New wires a crawler. catalog may be nil.
func New(opts Options, renderer Renderer, downloader Downloader, catalog Catalog, log logrus.FieldLogger) *Crawler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Crawler{
		opts:       opts,
		renderer:   renderer,
		downloader: downloader,
		catalog:    catalog,
		log:        log,
	}
}

// Run crawls from the base URL, then processes every product page found.
// Only setup failures are returned; page and download errors are logged and skipped.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(filepath.Join(c.opts.OutputDir, "products"), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	dw, err := digest.Open(filepath.Join(c.opts.OutputDir, digestFile))
	if err != nil {
		return nil, err
	}
	defer dw.Close()

	session := NewSession(c.opts.BaseURL)

	c.log.WithField("base_url", c.opts.BaseURL).Infof("Starting crawl (max %d pages)", c.opts.MaxPages)
	c.discover(ctx, session)

	products := session.Products()
	c.log.Infof("Crawl finished: %d pages visited, %d product pages found", session.PagesProcessed(), len(products))

	summary := &Summary{
		PagesCrawled:  session.PagesProcessed(),
		ProductsFound: len(products),
	}
	for _, res := range c.processProducts(ctx, products, dw) {
		if res.Err != nil {
			summary.ProductsFailed++
			continue
		}
		summary.ProductsProcessed++
		summary.MediaDownloaded += res.Downloads
	}

	c.log.WithFields(logrus.Fields{
		"pages":     summary.PagesCrawled,
		"found":     summary.ProductsFound,
		"processed": summary.ProductsProcessed,
		"failed":    summary.ProductsFailed,
		"media":     summary.MediaDownloaded,
	}).Info("Run complete")
	return summary, nil
}

// discover is the sequential crawl phase.
func (c *Crawler) discover(ctx context.Context, session *Session) {
	for session.PagesProcessed() < c.opts.MaxPages {
		if ctx.Err() != nil {
			c.log.Warn("Context cancelled, stopping crawl")
			return
		}
		pageURL, ok := session.Next()
		if !ok {
			return
		}
		if session.Visited(pageURL) {
			continue
		}
		session.MarkVisited(pageURL)

		log := c.log.WithField("url", pageURL)
		log.Infof("Crawling page %d/%d (%d queued)", session.PagesProcessed(), c.opts.MaxPages, session.Pending())

		links, err := c.pageLinks(ctx, pageURL)
		if err != nil {
			log.Warnf("Failed to crawl page: %v", err)
		} else {
			products, queued := c.route(session, links)
			log.Debugf("Found %d links: %d new products, %d new pages", len(links), products, queued)
		}

		if err := sleep(ctx, c.opts.Delay); err != nil {
			return
		}
	}
	c.log.Infof("Reached page limit of %d", c.opts.MaxPages)
}

func (c *Crawler) pageLinks(ctx context.Context, pageURL string) ([]string, error) {
	page, err := c.renderer.Open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	markup, err := page.HTML()
	if err != nil {
		return nil, err
	}
	return scraper.PageLinks(markup, pageURL), nil
}

// route sorts harvested links into the product set or the frontier.
// The product check comes before the include check, so a product URL is never crawled as a page.
func (c *Crawler) route(session *Session, links []string) (products, queued int) {
	for _, link := range links {
		switch {
		case !strings.HasPrefix(link, c.opts.BaseURL):
		case containsAny(link, c.opts.ExcludePatterns):
		case c.isProductURL(link):
			if session.AddProduct(link) {
				products++
			}
		case containsAny(link, c.opts.IncludePatterns):
			if session.Enqueue(link) {
				queued++
			}
		}
	}
	return products, queued
}

func (c *Crawler) isProductURL(link string) bool {
	path := link
	if u, err := url.Parse(link); err == nil {
		path = u.Path
	}
	return strings.Contains(path, c.opts.ProductMarker)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
