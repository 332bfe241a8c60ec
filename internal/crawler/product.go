package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"StoreScraper/internal/digest"
	"StoreScraper/internal/models"
	"StoreScraper/internal/scraper"
	"StoreScraper/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	reportFile     = "product_info.md"
	screenshotFile = "screenshot.png"
	digestFile     = "all_content.txt"
)

// ProductResult is the outcome of processing one product page.
type ProductResult struct {
	URL       string
	Name      string
	Category  string
	Dir       string
	Downloads int
	Err       error
}

type mediaGroup struct {
	exts   []string
	subdir string
	prefix string
}

func (c *Crawler) mediaGroups() []mediaGroup {
	return []mediaGroup{
		{c.opts.Media.Images, "images", "image"},
		{c.opts.Media.Videos, "videos", "video"},
		{c.opts.Media.Documents, "pdfs", "document"},
	}
}

// processProducts handles every product URL with at most opts.Workers in flight.
// Results are returned in the order of urls.
func (c *Crawler) processProducts(ctx context.Context, urls []string, dw *digest.Writer) []ProductResult {
	results := make([]ProductResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	for i, productURL := range urls {
		g.Go(func() error {
			results[i] = c.processProduct(ctx, productURL, dw)
			// Failures stay inside the result so the other products keep going.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Crawler) processProduct(ctx context.Context, productURL string, dw *digest.Writer) ProductResult {
	log := c.log.WithField("url", productURL)
	res := ProductResult{URL: productURL}

	fail := func(format string, err error) ProductResult {
		res.Err = fmt.Errorf(format, err)
		log.Warnf("Skipping product: %v", res.Err)
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail("cancelled: %w", err)
	}

	page, err := c.renderer.Open(ctx, productURL)
	if err != nil {
		return fail("render page: %w", err)
	}
	defer page.Close()

	markup, err := page.HTML()
	if err != nil {
		return fail("read page: %w", err)
	}
	product, err := scraper.ParseProduct(markup, productURL)
	if err != nil {
		return fail("parse page: %w", err)
	}
	res.Name = product.Name
	res.Category = scraper.Classify(product.Name, productURL, c.opts.Categories)

	res.Dir = filepath.Join(c.opts.OutputDir, "products",
		utils.SanitizeFilename(res.Category), utils.SanitizeFilename(product.Name))
	for _, group := range c.mediaGroups() {
		if err := os.MkdirAll(filepath.Join(res.Dir, group.subdir), 0o755); err != nil {
			return fail("create product directory: %w", err)
		}
	}

	if err := os.WriteFile(filepath.Join(res.Dir, reportFile), []byte(scraper.RenderReport(product)), 0o644); err != nil {
		return fail("write report: %w", err)
	}
	if err := dw.Append(scraper.DigestBlock(res.Category, product)); err != nil {
		log.Warnf("Could not append to digest: %v", err)
	}

	if shot, err := page.Screenshot(); err != nil {
		log.Warnf("Could not capture screenshot: %v", err)
	} else if err := os.WriteFile(filepath.Join(res.Dir, screenshotFile), shot, 0o644); err != nil {
		log.Warnf("Could not save screenshot: %v", err)
	}

	res.Downloads = c.downloadMedia(ctx, markup, productURL, res.Dir, log)

	if c.catalog != nil {
		c.saveToCatalog(ctx, product, res, log)
	}

	log.WithField("category", res.Category).Infof("Processed product %q (%d media files)", product.Name, res.Downloads)
	return res
}

// downloadMedia fetches every linked image, video and document into the
// product directory as <prefix>_<n><ext>, numbered in discovery order.
func (c *Crawler) downloadMedia(ctx context.Context, markup, pageURL, dir string, log logrus.FieldLogger) int {
	downloaded := 0
	for _, group := range c.mediaGroups() {
		for i, link := range scraper.ExtractLinks(markup, group.exts, pageURL) {
			name := fmt.Sprintf("%s_%d%s", group.prefix, i+1, extensionOf(link))
			dest := filepath.Join(dir, group.subdir, name)

			if err := c.downloader.Download(ctx, link, dest); err != nil {
				log.WithField("media", link).Warnf("Download failed: %v", err)
				continue
			}
			log.WithField("media", link).Infof("Downloaded %s", name)
			downloaded++
		}
	}
	return downloaded
}

func (c *Crawler) saveToCatalog(ctx context.Context, product models.Product, res ProductResult, log logrus.FieldLogger) {
	price, _ := utils.ParsePrice(product.Price)
	entry := models.CatalogEntry{
		ProductURL: res.URL,
		Name:       product.Name,
		Category:   res.Category,
		PriceText:  product.Price,
		PriceValue: price,
		Directory:  res.Dir,
		MediaCount: res.Downloads,
	}
	if err := c.catalog.SaveProduct(ctx, entry); err != nil {
		log.Warnf("Could not record product in catalog: %v", err)
	}
}

func extensionOf(link string) string {
	p := link
	if u, err := url.Parse(link); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}
