// ABOUTME: Extracts the readable text of a company's "about us" page
// ABOUTME: Uses go-readability for the main content and html-to-markdown for formatting

package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"

	"kvk-insights-api/core/interfaces"
	htmlutil "kvk-insights-api/pkg/utils/html"
)

const (
	aboutCacheTTL = 24 * time.Hour
	maxAboutText  = 4000
)

var (
	manyNewlines    = regexp.MustCompile(`\n{3,}`)
	trailingSpaces  = regexp.MustCompile(`[ \t]+\n`)
	leadingSpaces   = regexp.MustCompile(`\n[ \t]+`)
	markdownImage   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	markdownLinkURL = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
)

// AboutPageReader implements AboutReader
type AboutPageReader struct {
	deps interfaces.Dependencies
}

// NewAboutPageReader creates an about page reader
func NewAboutPageReader(deps interfaces.Dependencies) *AboutPageReader {
	return &AboutPageReader{deps: deps}
}

// About returns the page's main text as lightweight markdown
func (s *AboutPageReader) About(ctx context.Context, pageURL string) (string, error) {
	cacheKey := "about:" + pageURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			return string(data), nil
		}
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid about URL: %s", pageURL)
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	body := resp.Body()
	defer body.Close()
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("about page returned %d", resp.StatusCode())
	}

	article, err := readability.FromReader(io.LimitReader(body, maxBodySize), parsed)
	if err != nil {
		return "", fmt.Errorf("parse about page: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if article.Content != "" {
		converter := md.NewConverter("", true, nil)
		if markdown, err := converter.ConvertString(article.Content); err == nil {
			text = cleanMarkdown(markdown)
		} else {
			s.deps.Logger.Debug("Failed to convert about page to markdown", map[string]interface{}{
				"url":   pageURL,
				"error": err.Error(),
			})
		}
	}
	text = htmlutil.Truncate(text, maxAboutText)

	if s.deps.Cache != nil && text != "" {
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(text), aboutCacheTTL)
	}
	return text, nil
}

// cleanMarkdown strips images and link targets and collapses blank lines
func cleanMarkdown(markdown string) string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = markdownImage.ReplaceAllString(markdown, "")
	markdown = markdownLinkURL.ReplaceAllString(markdown, "$1")
	markdown = trailingSpaces.ReplaceAllString(markdown, "\n")
	markdown = leadingSpaces.ReplaceAllString(markdown, "\n")
	markdown = manyNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
