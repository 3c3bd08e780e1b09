// ABOUTME: News search over an RSS search feed, parsed with gofeed
// ABOUTME: Returns the newest articles mentioning a company name

package news

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	htmlutil "kvk-insights-api/pkg/utils/html"
	timeutil "kvk-insights-api/pkg/utils/time"
)

const (
	// MaxItems caps how many articles a profile carries
	MaxItems = 10

	maxSummary = 280
	maxFeed    = 2 << 20
)

// Client searches a news feed
type Client struct {
	feedURL string
	http    interfaces.HTTPClient
}

// NewClient creates a news client. feedURL must contain one %s that is
// replaced by the escaped company name.
func NewClient(feedURL string, httpClient interfaces.HTTPClient) *Client {
	return &Client{feedURL: feedURL, http: httpClient}
}

// News returns at most MaxItems articles, newest first
func (c *Client) News(ctx context.Context, companyName string) ([]domain.NewsItem, error) {
	query := `"` + strings.TrimSpace(companyName) + `"`
	feedURL := fmt.Sprintf(c.feedURL, url.QueryEscape(query))

	resp, err := c.http.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.ExternalAPIError{StatusCode: resp.StatusCode(), Message: "news feed request failed", API: "nieuws"}
	}

	feed, err := gofeed.NewParser().Parse(io.LimitReader(body, maxFeed))
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w", err)
	}

	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Title == "" || it.Link == "" {
			continue
		}
		items = append(items, toNewsItem(it))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}

	return items, nil
}

func toNewsItem(it *gofeed.Item) domain.NewsItem {
	title, source := splitPublisher(it.Title)
	if it.Author != nil && it.Author.Name != "" {
		source = it.Author.Name
	}
	if source == "" {
		if u, err := url.Parse(it.Link); err == nil {
			source = strings.TrimPrefix(u.Hostname(), "www.")
		}
	}

	item := domain.NewsItem{
		Title:   title,
		Source:  source,
		URL:     it.Link,
		Summary: htmlutil.Truncate(htmlutil.StripHTML(it.Description), maxSummary),
	}
	if it.PublishedParsed != nil {
		item.PublishedAt = *it.PublishedParsed
	} else if it.Published != "" {
		item.PublishedAt = timeutil.ParseFlexibleTime(it.Published)
	}
	return item
}

// splitPublisher separates the "Headline - Publisher" form used by search feeds
func splitPublisher(title string) (string, string) {
	i := strings.LastIndex(title, " - ")
	if i <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
}
