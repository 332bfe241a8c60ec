package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"StoreScraper/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

var (
	nameSelectors = []string{
		"h1.product-title",
		`[data-testid="product-title"]`,
		".product-title",
		".product__title",
		"h1",
	}
	priceSelectors = []string{
		".price",
		`[data-testid="price"]`,
		".product-price",
		`[class*="price"]`,
	}
	descriptionSelectors = []string{
		".product-description",
		`[data-testid="product-description"]`,
		".product__description",
		"#description",
	}
	featureSelectors = []string{
		".product-features li",
		".features li",
		"ul.feature-list li",
		`[class*="feature"] li`,
	}
	specTableSelectors = []string{
		"table.specifications",
		"table.specs",
		".specifications table",
		".specs table",
		".tech-specs table",
		"table",
	}
)

// titleSuffixRegex strips a trailing " | Site Name" (or " - ", " – ") from a page title.
var titleSuffixRegex = regexp.MustCompile(`(^|\s+)[|–—-]\s+[^|–—-]*$`)

var (
	nameCascade        = textCascade(nameSelectors, textOf)
	priceCascade       = textCascade(priceSelectors, textOf)
	descriptionCascade = textCascade(descriptionSelectors, blockTextOf)
	featureCascade     = itemCascade(featureSelectors)
	specCascade        = specificationCascade(specTableSelectors)
)

// ParseProduct extracts a product record from rendered page markup. Missing
// fields fall back to placeholders; only unreadable markup is an error.
func ParseProduct(markup, sourceURL string) (models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return models.Product{}, fmt.Errorf("parse product page %s: %w", sourceURL, err)
	}
	log := logrus.WithField("url", sourceURL)

	product := models.Product{SourceURL: sourceURL}

	name, ok := nameCascade.Run(doc)
	if !ok {
		name = nameFromTitle(doc)
		log.Debugf("No product title element, using page title: %s", name)
	}
	product.Name = name

	if product.Price, ok = priceCascade.Run(doc); !ok {
		product.Price = models.PriceUnavailable
		log.Debug("Failed to extract price")
	}

	product.Description, _ = descriptionCascade.Run(doc)

	if product.Features, ok = featureCascade.Run(doc); !ok {
		product.Features = []string{}
	}
	if product.Specifications, ok = specCascade.Run(doc); !ok {
		product.Specifications = map[string]string{}
	}

	log.Debugf("Parsed product %q: price=%q features=%d specs=%d",
		product.Name, product.Price, len(product.Features), len(product.Specifications))
	return product, nil
}

func nameFromTitle(doc *goquery.Document) string {
	title := collapseSpace(doc.Find("title").First().Text())
	title = strings.TrimSpace(titleSuffixRegex.ReplaceAllString(title, ""))
	if title == "" {
		return models.UnknownName
	}
	return title
}

func itemCascade(selectors []string) Cascade[[]string] {
	cascade := make(Cascade[[]string], 0, len(selectors))
	for _, sel := range selectors {
		cascade = append(cascade, itemsOf(sel))
	}
	return cascade
}

// specificationCascade tries each table selector in turn and then falls back
// to term/definition lists.
func specificationCascade(tableSelectors []string) Cascade[map[string]string] {
	cascade := make(Cascade[map[string]string], 0, len(tableSelectors)+1)
	for _, sel := range tableSelectors {
		cascade = append(cascade, specTable(sel))
	}
	return append(cascade, definitionLists)
}

// specTable reads the first table matched by selector, one key/value pair per row.
func specTable(selector string) Strategy[map[string]string] {
	return func(doc *goquery.Document) (map[string]string, bool) {
		table := doc.Find(selector).First()
		if table.Length() == 0 {
			return nil, false
		}

		specs := make(map[string]string)
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.ChildrenFiltered("th, td")
			if cells.Length() < 2 {
				return
			}
			key := collapseSpace(cells.Eq(0).Text())
			value := collapseSpace(cells.Eq(1).Text())
			if key == "" || value == "" {
				return
			}
			specs[key] = value
		})
		return specs, len(specs) > 0
	}
}

// definitionLists pairs the i-th dt with the i-th dd of every dl on the page.
func definitionLists(doc *goquery.Document) (map[string]string, bool) {
	specs := make(map[string]string)
	doc.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		terms := dl.Find("dt")
		defs := dl.Find("dd")
		n := min(terms.Length(), defs.Length())
		for i := 0; i < n; i++ {
			key := collapseSpace(terms.Eq(i).Text())
			value := collapseSpace(defs.Eq(i).Text())
			if key != "" && value != "" {
				specs[key] = value
			}
		}
	})
	return specs, len(specs) > 0
}
