// ABOUTME: Tests for search result URL normalization
// ABOUTME: Covers case folding, trailing slashes and identity-bearing queries

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL_CaseAndTrailingSlash(t *testing.T) {
	a := NormalizeURL("https://github.com/python/asyncio")
	b := NormalizeURL("HTTPS://GitHub.com/python/asyncio/")

	assert.Equal(t, a, b)
	assert.Equal(t, "https://github.com/python/asyncio", a)
}

func TestNormalizeURL_StripsFragment(t *testing.T) {
	assert.Equal(t,
		NormalizeURL("https://dev.to/a/post"),
		NormalizeURL("https://dev.to/a/post#comments"),
	)
}

func TestNormalizeURL_KeepsQueryIdentity(t *testing.T) {
	// Self-post pages are only distinguishable by their id parameter.
	a := NormalizeURL("https://news.ycombinator.com/item?id=1")
	b := NormalizeURL("https://news.ycombinator.com/item?id=2")

	assert.NotEqual(t, a, b)
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", a)
}

func TestNormalizeURL_UnparseableFallsBackToLowercase(t *testing.T) {
	assert.Equal(t, "not a url", NormalizeURL("  Not A URL "))
}
