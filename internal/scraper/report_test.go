package scraper

import (
	"strings"
	"testing"

	"StoreScraper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderReportSectionsInOrder(t *testing.T) {
	p := models.Product{
		Name:           "Dream Machine",
		Price:          "$379",
		Description:    "All-in-one gateway.",
		Features:       []string{"10G SFP+", "8-port switch"},
		Specifications: map[string]string{"Weight": "3.5 kg", "Power": "50 W"},
		SourceURL:      "https://store.ui.com/us/products/udm",
	}

	report := RenderReport(p)

	markers := []string{
		"# Dream Machine",
		"**Price:** $379",
		"## Description",
		"All-in-one gateway.",
		"## Features",
		"- 10G SFP+",
		"- 8-port switch",
		"## Specifications",
		"- **Power:** 50 W",
		"- **Weight:** 3.5 kg",
		"Source: https://store.ui.com/us/products/udm",
	}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(report, marker)
		if assert.GreaterOrEqual(t, idx, 0, "missing %q in\n%s", marker, report) {
			assert.Greater(t, idx, last, "%q out of order", marker)
			last = idx
		}
	}
}

func TestRenderReportOmitsEmptySections(t *testing.T) {
	p := models.Product{
		Name:           "Widget",
		Price:          models.PriceUnavailable,
		Features:       []string{},
		Specifications: map[string]string{},
		SourceURL:      "https://store.ui.com/us/products/widget",
	}

	report := RenderReport(p)

	assert.Contains(t, report, "# Widget")
	assert.Contains(t, report, "Source: https://store.ui.com/us/products/widget")
	for _, absent := range []string{"Price", "## Description", "## Features", "## Specifications"} {
		assert.NotContains(t, report, absent)
	}
}

func TestDigestBlock(t *testing.T) {
	p := models.Product{
		Name:        "Widget",
		Price:       "$99",
		Description: "Small.",
		Features:    []string{"Tiny", "Blue"},
		SourceURL:   "https://store.ui.com/us/products/widget",
	}

	block := DigestBlock("Other", p)

	expected := digestRule + "\n" +
		"Category: Other\n" +
		"Product: Widget\n" +
		digestRule + "\n" +
		"Description: Small.\n" +
		"Price: $99\n" +
		"Features:\n" +
		"- Tiny\n" +
		"- Blue\n" +
		"Source: https://store.ui.com/us/products/widget\n" +
		digestRule + "\n\n"
	assert.Equal(t, expected, block)
}
