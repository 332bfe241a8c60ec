package scraper

import (
	"net/url"
	"strings"

	"StoreScraper/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// skippedSchemes are reference prefixes that never point at a fetchable document.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// ExtractLinks returns the distinct absolute URLs referenced by href or src
// attributes whose path ends in one of exts, compared case-insensitively.
func ExtractLinks(markup string, exts []string, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		logrus.WithField("base", base).Warnf("ExtractLinks: invalid base URL: %v", err)
		return nil
	}
	suffixes := normalizeExtensions(exts)
	if len(suffixes) == 0 {
		return nil
	}

	var found []string
	walkAttributes(markup, func(tag, key, val string) {
		if key != "href" && key != "src" {
			return
		}
		abs, ok := resolve(baseURL, val)
		if !ok || !hasExtension(abs.Path, suffixes) {
			return
		}
		found = append(found, abs.String())
	})
	return utils.UniqueStrings(found)
}

// PageLinks returns the distinct absolute http(s) URLs of every anchor on the page,
// with fragments removed.
func PageLinks(markup string, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		logrus.WithField("base", base).Warnf("PageLinks: invalid base URL: %v", err)
		return nil
	}

	var found []string
	walkAttributes(markup, func(tag, key, val string) {
		if tag != "a" || key != "href" {
			return
		}
		if abs, ok := resolve(baseURL, val); ok {
			found = append(found, abs.String())
		}
	})
	return utils.UniqueStrings(found)
}

// walkAttributes calls fn for every attribute of every element in markup.
func walkAttributes(markup string, fn func(tag, key, val string)) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		logrus.Warnf("Error parsing HTML: %v", err)
		return
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				fn(n.Data, strings.ToLower(a.Key), a.Val)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

func resolve(base *url.URL, raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return nil, false
	}
	lower := strings.ToLower(raw)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return nil, false
		}
	}

	ref, err := url.Parse(raw)
	if err != nil {
		logrus.WithField("href", raw).Debugf("Dropping malformed URL: %v", err)
		return nil, false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return nil, false
	}
	abs.Fragment = ""
	abs.RawFragment = ""
	return abs, true
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func hasExtension(path string, suffixes []string) bool {
	path = strings.ToLower(path)
	for _, suffix := range suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
