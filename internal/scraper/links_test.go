package scraper

import (
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const mediaPage = `<html><body>
<img src="/media/hero.PNG">
<img src="https://cdn.example.com/gallery/side.jpg?w=600#zoom">
<img src="/media/hero.PNG">
<a href="docs/datasheet.pdf">Datasheet</a>
<a href="/products/widget">Widget</a>
<video src="//cdn.example.com/clips/demo.mp4"></video>
<a href="javascript:void(0)">noop</a>
<a href="http://[::1]:namedport/broken.png">broken</a>
<link rel="icon" href="/favicon.ico">
</body></html>`

func TestExtractLinks(t *testing.T) {
	base := "https://store.example.com/us/products/widget"

	images := ExtractLinks(mediaPage, []string{".png", ".JPG"}, base)
	assert.Equal(t, []string{
		"https://store.example.com/media/hero.PNG",
		"https://cdn.example.com/gallery/side.jpg?w=600",
	}, images)

	docs := ExtractLinks(mediaPage, []string{"pdf"}, base)
	assert.Equal(t, []string{"https://store.example.com/us/products/docs/datasheet.pdf"}, docs)

	videos := ExtractLinks(mediaPage, []string{".mp4"}, base)
	assert.Equal(t, []string{"https://cdn.example.com/clips/demo.mp4"}, videos)

	assert.Empty(t, ExtractLinks(mediaPage, nil, base))
	assert.Empty(t, ExtractLinks(mediaPage, []string{".png"}, "://bad base"))
}

func TestExtractLinksOnlyMatchingUniqueURLs(t *testing.T) {
	pages := []string{
		mediaPage,
		`<a href="/a.gif"></a><a href="/A.GIF"></a><a href="/a.gif"></a><img src="/b.gif.txt">`,
		`<p>no links at all</p>`,
		`<img src=""><a href="#top">top</a>`,
	}
	exts := []string{".gif", ".png", ".pdf"}

	for _, markup := range pages {
		links := ExtractLinks(markup, exts, "https://store.example.com/")
		seen := map[string]bool{}
		for _, link := range links {
			assert.False(t, seen[link], "duplicate %s", link)
			seen[link] = true

			u, err := url.Parse(link)
			if assert.NoError(t, err) {
				assert.Contains(t, exts, strings.ToLower(path.Ext(u.Path)))
			}
		}
	}
}

func TestPageLinks(t *testing.T) {
	markup := `<a href="/us/category/switching#top">Switching</a>
<a href="/us/category/switching">Switching again</a>
<a href="https://other.example.org/x">External</a>
<a href="mailto:sales@example.com">Mail</a>
<a href="tel:+100">Call</a>
<a href="#reviews">Reviews</a>
<img src="/media/hero.png">
<a>no href</a>`

	links := PageLinks(markup, "https://store.example.com/us/")
	assert.Equal(t, []string{
		"https://store.example.com/us/category/switching",
		"https://other.example.org/x",
	}, links)
}
