package scraper

import (
	"net/url"
	"strings"

	"StoreScraper/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classify picks the output category for a product. A /collections/<slug> path
// segment wins outright; otherwise the first known category contained in the
// product name; otherwise "Other".
func Classify(name, rawURL string, categories []string) string {
	if slug := collectionSlug(rawURL); slug != "" {
		return titleSlug(slug)
	}

	lowerName := strings.ToLower(name)
	for _, category := range categories {
		if category != "" && strings.Contains(lowerName, strings.ToLower(category)) {
			return category
		}
	}
	return models.OtherCategory
}

func collectionSlug(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "collections" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	return ""
}

// titleSlug turns "cloud-gateways" into "Cloud Gateways".
func titleSlug(slug string) string {
	// A Caser keeps state and must not be shared between goroutines.
	caser := cases.Title(language.English)

	words := strings.Split(slug, "-")
	titled := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		titled = append(titled, caser.String(word))
	}
	return strings.Join(titled, " ")
}
