package models

import "time"

// Placeholders used when a product page does not expose the field.
const (
	UnknownName      = "Unknown Product"
	PriceUnavailable = "Price not available"
	OtherCategory    = "Other"
)

// Product holds everything extracted from a single product page.
type Product struct {
	Name           string
	Description    string
	Price          string
	Features       []string
	Specifications map[string]string
	SourceURL      string
}

// HasPrice reports whether a real price was found on the page.
func (p Product) HasPrice() bool {
	return p.Price != "" && p.Price != PriceUnavailable
}

// CatalogEntry is one row of the product catalog.
type CatalogEntry struct {
	ID         int64
	ProductURL string
	Name       string
	Category   string
	PriceText  string
	PriceValue float64
	Directory  string
	MediaCount int
	ScrapedAt  time.Time
}
