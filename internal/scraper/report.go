package scraper

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"StoreScraper/internal/models"

	"github.com/nao1215/markdown"
)

const digestRule = "================================================================================"

// RenderReport serializes a product into the Markdown report stored next to its media.
func RenderReport(p models.Product) string {
	md := markdown.NewMarkdown(io.Discard)

	md.H1(p.Name)
	md.PlainText("")

	if p.HasPrice() {
		md.PlainTextf("**Price:** %s", p.Price)
		md.PlainText("")
	}

	if p.Description != "" {
		md.H2("Description")
		md.PlainText("")
		md.PlainText(p.Description)
		md.PlainText("")
	}

	if len(p.Features) > 0 {
		md.H2("Features")
		md.PlainText("")
		md.BulletList(p.Features...)
		md.PlainText("")
	}

	if len(p.Specifications) > 0 {
		md.H2("Specifications")
		md.PlainText("")
		md.BulletList(specLines(p.Specifications)...)
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("Source: %s", p.SourceURL)

	return md.String()
}

func specLines(specs map[string]string) []string {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("**%s:** %s", k, specs[k]))
	}
	return lines
}

// DigestBlock formats the entry appended to the shared all_content.txt file.
func DigestBlock(category string, p models.Product) string {
	var b strings.Builder

	fmt.Fprintln(&b, digestRule)
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Product: %s\n", p.Name)
	fmt.Fprintln(&b, digestRule)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Price: %s\n", p.Price)
	fmt.Fprintln(&b, "Features:")
	for _, f := range p.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "Source: %s\n", p.SourceURL)
	fmt.Fprintln(&b, digestRule)
	fmt.Fprintln(&b)

	return b.String()
}
