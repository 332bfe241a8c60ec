package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StoreScraper/internal/app"
	"StoreScraper/pkg/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	maxPages   int
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "scraper",
		Short:         "Crawl a store and export its products",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yml (default: $SCRAPER_CONFIG, else built-in defaults)")

	crawlCmd := &cobra.Command{
		Use:   "crawl",
		Short: "Discover product pages and write reports, media and the digest",
		Args:  cobra.NoArgs,
		RunE:  runCrawl,
	}
	crawlCmd.Flags().IntVar(&maxPages, "max-pages", 0, "Override scraper.max_pages")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List products recorded by previous crawls",
		Args:  cobra.NoArgs,
		RunE:  runCatalog,
	}

	rootCmd.AddCommand(crawlCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadApp() (*app.App, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("SCRAPER_CONFIG")
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if maxPages > 0 {
		cfg.Scraper.MaxPages = maxPages
	}
	return app.New(cfg)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := a.RunCrawl(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Crawled %d pages, found %d products: %d saved, %d failed, %d media files downloaded\n",
		summary.PagesCrawled, summary.ProductsFound, summary.ProductsProcessed, summary.ProductsFailed, summary.MediaDownloaded)
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return a.ListCatalog(ctx, os.Stdout)
}
