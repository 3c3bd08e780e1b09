// ABOUTME: Website crawl service that scrapes a company homepage once per profile
// ABOUTME: Uses colly for the fetch and shares in-flight crawls through singleflight

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"golang.org/x/sync/singleflight"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

const (
	crawlUserAgent  = "Mozilla/5.0 (compatible; KvkInsightsBot/1.0; +https://kvk-insights.nl/bot)"
	crawlCacheTTL   = 6 * time.Hour
	crawlTimeout    = 10 * time.Second
	maxBodySize     = 5 * 1024 * 1024
	maxCachedHTML   = 256 * 1024
	websiteCacheKey = "website:"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

var aboutHints = []string{"over-ons", "over ons", "overons", "about", "wie-zijn-wij", "wie zijn wij", "ons-verhaal"}

// WebsiteCrawler implements WebsiteService
type WebsiteCrawler struct {
	deps    interfaces.Dependencies
	flights singleflight.Group
	timeout time.Duration
}

// NewWebsiteCrawler creates a crawler
func NewWebsiteCrawler(deps interfaces.Dependencies) *WebsiteCrawler {
	return &WebsiteCrawler{deps: deps, timeout: crawlTimeout}
}

// Crawl fetches siteURL and extracts contact details, socials and the raw
// material for tech detection. Concurrent calls for the same URL share one fetch.
func (s *WebsiteCrawler) Crawl(ctx context.Context, siteURL string) (*interfaces.WebsiteSnapshot, error) {
	target, err := NormalizeSiteURL(siteURL)
	if err != nil {
		return nil, err
	}

	if snap := s.cached(ctx, target); snap != nil {
		return snap, nil
	}

	v, err, _ := s.flights.Do(target, func() (interface{}, error) {
		snap, err := s.crawl(ctx, target)
		if err != nil {
			return nil, err
		}
		s.store(ctx, target, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*interfaces.WebsiteSnapshot), nil
}

func (s *WebsiteCrawler) cached(ctx context.Context, target string) *interfaces.WebsiteSnapshot {
	if s.deps.Cache == nil {
		return nil
	}
	data, err := s.deps.Cache.Get(ctx, websiteCacheKey+target)
	if err != nil || data == nil {
		return nil
	}
	var snap interfaces.WebsiteSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return &snap
}

func (s *WebsiteCrawler) store(ctx context.Context, target string, snap *interfaces.WebsiteSnapshot) {
	if s.deps.Cache == nil {
		return
	}
	trimmed := *snap
	if len(trimmed.HTML) > maxCachedHTML {
		trimmed.HTML = trimmed.HTML[:maxCachedHTML]
	}
	if data, err := json.Marshal(trimmed); err == nil {
		_ = s.deps.Cache.Set(ctx, websiteCacheKey+target, data, crawlCacheTTL)
	}
}

func (s *WebsiteCrawler) crawl(ctx context.Context, target string) (*interfaces.WebsiteSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	c := colly.NewCollector(
		colly.UserAgent(crawlUserAgent),
		colly.MaxBodySize(maxBodySize),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	snap := &interfaces.WebsiteSnapshot{URL: target, Headers: map[string]string{}}
	var visitErr error

	c.OnResponse(func(r *colly.Response) {
		snap.URL = r.Request.URL.String()
		snap.HTML = string(r.Body)
		for k, v := range *r.Headers {
			if len(v) > 0 {
				snap.Headers[strings.ToLower(k)] = v[0]
			}
		}
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		extractHead(e.DOM, snap)
		extractLinks(e, snap)
	})

	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("crawl %s: status %d: %w", target, r.StatusCode, err)
	})

	if err := c.Visit(target); err != nil && visitErr == nil {
		visitErr = fmt.Errorf("crawl %s: %w", target, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if visitErr != nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Website crawl failed", map[string]interface{}{
				"url":   target,
				"error": visitErr.Error(),
			})
		}
		return nil, visitErr
	}

	if snap.Email == "" {
		snap.Email = findEmail(snap.HTML, snap.URL)
	}
	return snap, nil
}

func extractHead(doc *goquery.Selection, snap *interfaces.WebsiteSnapshot) {
	snap.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content := strings.TrimSpace(m.AttrOr("content", ""))
		if content == "" {
			return
		}
		name := strings.ToLower(m.AttrOr("name", ""))
		property := strings.ToLower(m.AttrOr("property", ""))

		switch {
		case name == "theme-color":
			snap.ThemeColor = content
		case name == "generator":
			snap.Generator = content
		case property == "og:description":
			snap.Description = content
		case name == "description" && snap.Description == "":
			snap.Description = content
		case property == "og:image" && snap.ImageURL == "":
			snap.ImageURL = content
		}
	})

	doc.Find("script[src]").Each(func(_ int, sc *goquery.Selection) {
		snap.Scripts = append(snap.Scripts, sc.AttrOr("src", ""))
	})
}

func extractLinks(e *colly.HTMLElement, snap *interfaces.WebsiteSnapshot) {
	if snap.ImageURL == "" {
		e.DOM.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			hint := strings.ToLower(img.AttrOr("class", "") + " " + img.AttrOr("alt", "") + " " + img.AttrOr("id", ""))
			if src := img.AttrOr("src", ""); src != "" && strings.Contains(hint, "logo") {
				snap.ImageURL = src
				return false
			}
			return true
		})
	}
	if snap.ImageURL != "" {
		snap.ImageURL = e.Request.AbsoluteURL(snap.ImageURL)
	}

	e.DOM.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)

		switch {
		case strings.HasPrefix(lower, "mailto:"):
			if snap.Email == "" {
				addr := strings.SplitN(href[len("mailto:"):], "?", 2)[0]
				snap.Email = strings.TrimSpace(addr)
			}
			return
		case strings.HasPrefix(lower, "tel:"):
			if snap.Phone == "" {
				snap.Phone = strings.TrimSpace(href[len("tel:"):])
			}
			return
		}

		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		snap.Links = append(snap.Links, abs)
		assignSocial(&snap.Socials, abs)

		if snap.AboutURL == "" && isSameSite(abs, snap.URL) {
			text := strings.ToLower(a.Text())
			for _, hint := range aboutHints {
				if strings.Contains(lower, hint) || strings.Contains(text, hint) {
					snap.AboutURL = abs
					break
				}
			}
		}
	})
}

// NormalizeSiteURL adds a scheme to bare registry website entries
func NormalizeSiteURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("website URL cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("invalid website URL: %s", raw)
	}
	return u.String(), nil
}

func findEmail(html, siteURL string) string {
	host := hostOf(siteURL)
	var first string
	for _, m := range emailPattern.FindAllString(html, 20) {
		lower := strings.ToLower(m)
		if strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".webp") {
			continue
		}
		if host != "" && strings.HasSuffix(lower, "@"+host) {
			return m
		}
		if first == "" {
			first = m
		}
	}
	return first
}

func assignSocial(s *domain.SocialProfiles, link string) {
	host := hostOf(link)
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		if s.LinkedIn == "" {
			s.LinkedIn = link
		}
	case host == "facebook.com" || host == "fb.com":
		if s.Facebook == "" {
			s.Facebook = link
		}
	case host == "instagram.com":
		if s.Instagram == "" {
			s.Instagram = link
		}
	case host == "twitter.com" || host == "x.com":
		if s.Twitter == "" {
			s.Twitter = link
		}
	case host == "youtube.com" || host == "youtu.be":
		if s.YouTube == "" {
			s.YouTube = link
		}
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func isSameSite(a, b string) bool {
	ha, hb := hostOf(a), hostOf(b)
	return ha != "" && ha == hb
}
