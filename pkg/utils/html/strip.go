// ABOUTME: HTML utilities for turning feed and page fragments into plain text
// ABOUTME: Uses goquery so entities are decoded and script/style content dropped

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes tags, scripts and styles and collapses whitespace
func StripHTML(fragment string) string {
	if !strings.Contains(fragment, "<") && !strings.Contains(fragment, "&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	return collapse(doc.Text())
}

// Truncate shortens s to at most max runes, cutting on a word boundary
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
