package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionFrontierIsFIFOAndDeduplicated(t *testing.T) {
	s := NewSession("https://shop/")
	assert.True(t, s.Enqueue("https://shop/a"))
	assert.True(t, s.Enqueue("https://shop/b"))
	assert.False(t, s.Enqueue("https://shop/a"), "already queued")
	assert.Equal(t, 3, s.Pending())

	url, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://shop/", url)
	s.MarkVisited(url)
	assert.False(t, s.Enqueue("https://shop/"), "already visited")

	url, _ = s.Next()
	assert.Equal(t, "https://shop/a", url)
	url, _ = s.Next()
	assert.Equal(t, "https://shop/b", url)

	_, ok = s.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, s.PagesProcessed())
}

func TestSessionProductsAreASet(t *testing.T) {
	s := NewSession("https://shop/")
	assert.True(t, s.AddProduct("https://shop/products/x"))
	assert.True(t, s.AddProduct("https://shop/products/y"))
	assert.False(t, s.AddProduct("https://shop/products/x"))
	assert.Equal(t, []string{"https://shop/products/x", "https://shop/products/y"}, s.Products())
}
