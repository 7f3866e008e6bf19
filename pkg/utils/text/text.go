// ABOUTME: Text utilities for cleaning and truncating external content
// ABOUTME: Strips HTML markup from feed and API payloads before display

package text

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from a fragment and returns its visible text.
// Malformed input falls back to the raw string with tags crudely removed.
func StripHTML(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		// Tag-free text can still carry entities.
		return collapseWhitespace(html.UnescapeString(fragment))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(html.UnescapeString(stripTagsFallback(fragment)))
	}

	doc.Find("script, style").Remove()
	return collapseWhitespace(doc.Text())
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// content was cut. Cuts happen at a word boundary where possible.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	cut := string(runes[:max])
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripTagsFallback(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
