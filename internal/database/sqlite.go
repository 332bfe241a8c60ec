package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StoreScraper/internal/models"

	_ "modernc.org/sqlite"
)

// DBRepository is a thin layer over the catalog database connection.
type DBRepository struct {
	DB *sql.DB
}

// InitDB opens (or creates) the catalog at filepath and makes sure the schema exists.
func InitDB(path string) (*DBRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// Product workers write concurrently; sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}

	createProductsTableSQL := `
	CREATE TABLE IF NOT EXISTS products (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"product_url" TEXT UNIQUE,
		"name" TEXT,
		"category" TEXT,
		"price_text" TEXT,
		"price_value" REAL,
		"directory" TEXT,
		"media_count" INTEGER DEFAULT 0,
		"scraped_at" DATETIME
	);`
	if _, err = db.Exec(createProductsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create products table: %w", err)
	}

	return &DBRepository{DB: db}, nil
}

// Close closes the database connection.
func (repo *DBRepository) Close() error {
	return repo.DB.Close()
}

// SaveProduct inserts a catalog entry, or refreshes it when the URL was seen in an earlier run.
func (repo *DBRepository) SaveProduct(ctx context.Context, entry models.CatalogEntry) error {
	if entry.ScrapedAt.IsZero() {
		entry.ScrapedAt = time.Now()
	}

	query := `
	INSERT INTO products (
		product_url, name, category, price_text, price_value, directory, media_count, scraped_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(product_url) DO UPDATE SET
		name=excluded.name,
		category=excluded.category,
		price_text=excluded.price_text,
		price_value=excluded.price_value,
		directory=excluded.directory,
		media_count=excluded.media_count,
		scraped_at=excluded.scraped_at;
	`
	_, err := repo.DB.ExecContext(ctx, query,
		entry.ProductURL, entry.Name, entry.Category, entry.PriceText, entry.PriceValue,
		entry.Directory, entry.MediaCount, entry.ScrapedAt,
	)
	if err != nil {
		return fmt.Errorf("save product %s: %w", entry.ProductURL, err)
	}
	return nil
}

// GetAllProducts returns every catalog entry ordered by category, then name.
func (repo *DBRepository) GetAllProducts(ctx context.Context) ([]models.CatalogEntry, error) {
	rows, err := repo.DB.QueryContext(ctx, `
		SELECT
			id, product_url, name, category, price_text, price_value,
			directory, media_count, scraped_at
		FROM products
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		var priceValue sql.NullFloat64
		if err := rows.Scan(
			&e.ID, &e.ProductURL, &e.Name, &e.Category, &e.PriceText, &priceValue,
			&e.Directory, &e.MediaCount, &e.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		e.PriceValue = priceValue.Float64
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountProducts returns the number of catalog entries.
func (repo *DBRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := repo.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}
