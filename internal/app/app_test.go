package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"StoreScraper/internal/database"
	"StoreScraper/internal/models"
	"StoreScraper/internal/scraper"
	"StoreScraper/pkg/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreStandardLogger(t *testing.T) {
	std := logrus.StandardLogger()
	out, formatter, level := std.Out, std.Formatter, std.GetLevel()
	t.Cleanup(func() {
		std.SetOutput(out)
		std.SetFormatter(formatter)
		std.SetLevel(level)
	})
}

func TestNewLogger(t *testing.T) {
	restoreStandardLogger(t)
	var buf bytes.Buffer
	log, err := NewLogger("warn", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = NewLogger("loud", &buf)
	assert.Error(t, err)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel(), "a bad level leaves the logger untouched")
}

func TestNewLoggerReachesPackageLogging(t *testing.T) {
	restoreStandardLogger(t)
	var buf bytes.Buffer
	_, err := NewLogger("debug", &buf)
	require.NoError(t, err)

	links := scraper.PageLinks(`<a href="http://[::1]:namedport/x">x</a>`, "https://store.ui.com/us/")
	assert.Empty(t, links)
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "Dropping malformed URL")
}

func TestCrawlerOptionsFromConfig(t *testing.T) {
	restoreStandardLogger(t)
	cfg := config.Default()
	cfg.Scraper.Workers = "4"
	a, err := New(cfg)
	require.NoError(t, err)

	opts := a.crawlerOptions()
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, cfg.Scraper.BaseURL, opts.BaseURL)
	assert.Equal(t, cfg.Categories, opts.Categories)
	assert.Equal(t, cfg.Media.Documents, opts.Media.Documents)
}

func TestListCatalog(t *testing.T) {
	restoreStandardLogger(t)
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")

	repo, err := database.InitDB(cfg.Catalog.Path)
	require.NoError(t, err)
	require.NoError(t, repo.SaveProduct(context.Background(), models.CatalogEntry{
		ProductURL: "https://store.ui.com/us/products/widget",
		Name:       "Widget",
		Category:   "Other",
		PriceText:  "$99",
		MediaCount: 3,
	}))
	require.NoError(t, repo.Close())

	a, err := New(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, a.ListCatalog(context.Background(), &out))
	assert.Contains(t, out.String(), "Widget")
	assert.Contains(t, out.String(), "$99")
	assert.Contains(t, out.String(), "1 products")

	cfg.Catalog.Enabled = false
	assert.Error(t, a.ListCatalog(context.Background(), &out))
}
