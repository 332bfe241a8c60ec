package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"StoreScraper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSaveAndList(t *testing.T) {
	ctx := context.Background()
	repo, err := InitDB(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	require.NoError(t, err)
	defer repo.Close()

	scraped := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveProduct(ctx, models.CatalogEntry{
		ProductURL: "https://store.ui.com/us/products/widget",
		Name:       "Widget",
		Category:   "Other",
		PriceText:  "$99",
		PriceValue: 99,
		Directory:  "output/products/Other/Widget",
		MediaCount: 2,
		ScrapedAt:  scraped,
	}))
	require.NoError(t, repo.SaveProduct(ctx, models.CatalogEntry{
		ProductURL: "https://store.ui.com/us/products/u7-pro",
		Name:       "U7 Pro",
		Category:   "WiFi",
		PriceText:  "$189",
		PriceValue: 189,
	}))

	// Same URL again: updated in place, not duplicated.
	require.NoError(t, repo.SaveProduct(ctx, models.CatalogEntry{
		ProductURL: "https://store.ui.com/us/products/widget",
		Name:       "Widget",
		Category:   "Other",
		PriceText:  "$89",
		PriceValue: 89,
		ScrapedAt:  scraped,
	}))

	count, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Widget", entries[0].Name)
	assert.Equal(t, "$89", entries[0].PriceText)
	assert.Equal(t, 89.0, entries[0].PriceValue)
	assert.True(t, scraped.Equal(entries[0].ScrapedAt.UTC()))
	assert.Equal(t, "WiFi", entries[1].Category)
	assert.False(t, entries[1].ScrapedAt.IsZero())
}
