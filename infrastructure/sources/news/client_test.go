package news

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/infrastructure/http/standard"
)

var feedPattern = regexp.MustCompile(`^https://news\.test/rss`)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpClient := standard.NewStandardHTTPClient(time.Second, standard.WithMaxRetries(1))
	httpmock.ActivateNonDefault(httpClient.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient("https://news.test/rss?q=%s", httpClient)
}

func rssItem(title, link, date, description string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate><description>%s</description></item>`,
		title, link, date, description)
}

func rss(items ...string) string {
	return `<?xml version="1.0"?><rss version="2.0"><channel><title>Zoeken</title>` +
		strings.Join(items, "") + `</channel></rss>`
}

func TestClient_News(t *testing.T) {
	client := newTestClient(t)
	body := rss(
		rssItem("Acme opent nieuw kantoor - Het Financieele Dagblad", "https://fd.test/a", "Mon, 02 Sep 2024 10:00:00 +0200", "&lt;b&gt;Acme&lt;/b&gt; groeit"),
		rssItem("Acme wint prijs", "https://www.nu.test/b", "Tue, 10 Sep 2024 10:00:00 +0200", ""),
		rssItem("", "https://empty.test", "Tue, 10 Sep 2024 10:00:00 +0200", ""),
	)
	httpmock.RegisterRegexpResponder(http.MethodGet, feedPattern, httpmock.NewStringResponder(http.StatusOK, body))

	items, err := client.News(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Acme wint prijs", items[0].Title)
	assert.Equal(t, "nu.test", items[0].Source)

	assert.Equal(t, "Acme opent nieuw kantoor", items[1].Title)
	assert.Equal(t, "Het Financieele Dagblad", items[1].Source)
	assert.Equal(t, "Acme groeit", items[1].Summary)
	assert.Equal(t, 2024, items[1].PublishedAt.Year())
}

func TestClient_News_CapsItems(t *testing.T) {
	client := newTestClient(t)
	var items []string
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		items = append(items, rssItem(fmt.Sprintf("Bericht %d", i), fmt.Sprintf("https://n.test/%d", i),
			base.AddDate(0, 0, i).Format(time.RFC1123Z), ""))
	}
	httpmock.RegisterRegexpResponder(http.MethodGet, feedPattern, httpmock.NewStringResponder(http.StatusOK, rss(items...)))

	got, err := client.News(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, got, MaxItems)
	assert.Equal(t, "Bericht 14", got[0].Title)
}

func TestClient_News_Empty(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterRegexpResponder(http.MethodGet, feedPattern, httpmock.NewStringResponder(http.StatusOK, rss()))

	got, err := client.News(context.Background(), "Acme")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_News_FeedDown(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterRegexpResponder(http.MethodGet, feedPattern, httpmock.NewStringResponder(http.StatusForbidden, ""))

	_, err := client.News(context.Background(), "Acme")
	assert.Error(t, err)
}

func TestSplitPublisher(t *testing.T) {
	title, source := splitPublisher("A - B - NOS")
	assert.Equal(t, "A - B", title)
	assert.Equal(t, "NOS", source)

	title, source = splitPublisher("Geen bron")
	assert.Equal(t, "Geen bron", title)
	assert.Empty(t, source)
}
