package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy pulls one field out of a parsed page. ok is false when the page
// does not carry the structure the strategy looks for.
type Strategy[T any] func(doc *goquery.Document) (value T, ok bool)

// Cascade is an ordered list of strategies; the first one that succeeds wins.
type Cascade[T any] []Strategy[T]

// Run evaluates the strategies in order and returns the first successful result.
func (c Cascade[T]) Run(doc *goquery.Document) (T, bool) {
	for _, strategy := range c {
		if value, ok := strategy(doc); ok {
			return value, true
		}
	}
	var zero T
	return zero, false
}

// textOf returns the first element matched by selector, with whitespace collapsed.
func textOf(selector string) Strategy[string] {
	return func(doc *goquery.Document) (string, bool) {
		text := collapseSpace(doc.Find(selector).First().Text())
		return text, text != ""
	}
}

// blockTextOf is like textOf but keeps line breaks, for multi-paragraph fields.
func blockTextOf(selector string) Strategy[string] {
	return func(doc *goquery.Document) (string, bool) {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		return text, text != ""
	}
}

// itemsOf returns the non-empty texts of every element matched by selector.
func itemsOf(selector string) Strategy[[]string] {
	return func(doc *goquery.Document) ([]string, bool) {
		var items []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if text := collapseSpace(s.Text()); text != "" {
				items = append(items, text)
			}
		})
		return items, len(items) > 0
	}
}

func textCascade(selectors []string, build func(string) Strategy[string]) Cascade[string] {
	cascade := make(Cascade[string], 0, len(selectors))
	for _, sel := range selectors {
		cascade = append(cascade, build(sel))
	}
	return cascade
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
