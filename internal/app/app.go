package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"StoreScraper/internal/browser"
	"StoreScraper/internal/crawler"
	"StoreScraper/internal/database"
	"StoreScraper/internal/downloader"
	"StoreScraper/pkg/config"
	"StoreScraper/utils"

	"github.com/sirupsen/logrus"
)

// App is the main application structure holding all dependencies.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
}

// New creates an application with a logger configured from cfg.
func New(cfg *config.Config) (*App, error) {
	log, err := NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log}, nil
}

// NewLogger configures the logrus standard logger for progress output and returns it.
// Packages that log through the logrus package functions share its level and format.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(lvl)
	return logger, nil
}

// RunCrawl starts the browser, crawls the store and exports every product found.
func (a *App) RunCrawl(ctx context.Context) (*crawler.Summary, error) {
	a.Log.Info("--- Starting Store Crawl ---")
	sc := a.Config.Scraper

	b, err := browser.Launch(browser.Options{
		Headless:       sc.Headless,
		UserAgent:      sc.UserAgent,
		Timeout:        sc.Timeout,
		ViewportWidth:  sc.ViewportWidth,
		ViewportHeight: sc.ViewportHeight,
	}, a.Log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Close(); err != nil {
			a.Log.Warnf("Failed to close browser: %v", err)
		}
	}()

	var catalog crawler.Catalog
	if path := a.Config.CatalogPath(); path != "" {
		repo, err := database.InitDB(path)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		catalog = repo
	}

	c := crawler.New(a.crawlerOptions(), b, downloader.New(sc.UserAgent, sc.Timeout), catalog, a.Log)
	summary, err := c.Run(ctx)
	if err != nil {
		return nil, err
	}

	a.Log.Info("--- Store Crawl Finished ---")
	return summary, nil
}

func (a *App) crawlerOptions() crawler.Options {
	sc := a.Config.Scraper
	return crawler.Options{
		BaseURL:         sc.BaseURL,
		MaxPages:        sc.MaxPages,
		OutputDir:       sc.OutputDir,
		Workers:         utils.GetOptimalWorkerCount(sc.Workers, a.Log),
		Delay:           sc.Delay,
		ProductMarker:   sc.ProductMarker,
		IncludePatterns: sc.IncludePatterns,
		ExcludePatterns: sc.ExcludePatterns,
		Categories:      a.Config.Categories,
		Media: crawler.Media{
			Images:    a.Config.Media.Images,
			Videos:    a.Config.Media.Videos,
			Documents: a.Config.Media.Documents,
		},
	}
}

// ListCatalog prints the catalog built by previous crawls.
func (a *App) ListCatalog(ctx context.Context, w io.Writer) error {
	path := a.Config.CatalogPath()
	if path == "" {
		return errors.New("catalog is disabled (catalog.enabled is false)")
	}
	repo, err := database.InitDB(path)
	if err != nil {
		return err
	}
	defer repo.Close()

	entries, err := repo.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	total, err := repo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tPRICE\tMEDIA\tURL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Category, e.Name, e.PriceText, e.MediaCount, e.ProductURL)
	}
	fmt.Fprintf(tw, "\n%d products\n", total)
	return tw.Flush()
}
