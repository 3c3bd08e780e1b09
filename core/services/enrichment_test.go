package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/core/interfaces"
)

func snapshotCrawler(snap *interfaces.WebsiteSnapshot) *mockCrawler {
	return &mockCrawler{crawlFunc: func(ctx context.Context, siteURL string) (*interfaces.WebsiteSnapshot, error) {
		return snap, nil
	}}
}

func TestWebEnrichment_Website_ThemeColorWins(t *testing.T) {
	colors := &mockColors{extractFunc: func(ctx context.Context, imageURL string) (string, error) {
		t.Fatal("image colour must not be extracted when theme-color is present")
		return "", nil
	}}
	svc := NewWebEnrichmentServiceWith(snapshotCrawler(&interfaces.WebsiteSnapshot{
		URL: "https://acme.test", Email: "info@acme.test", ThemeColor: "#FF0000", ImageURL: "https://acme.test/logo.png",
		Title: "Acme",
	}), &mockDetector{}, colors, nil, &mockLogger{})

	presence, err := svc.Website(context.Background(), "acme.test")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", presence.BrandColor)
	assert.Equal(t, "info@acme.test", presence.Email)
	assert.Equal(t, "Acme", presence.Description)
}

func TestWebEnrichment_Website_FallsBackToImageColor(t *testing.T) {
	colors := &mockColors{extractFunc: func(ctx context.Context, imageURL string) (string, error) {
		return "#123456", nil
	}}
	svc := NewWebEnrichmentServiceWith(snapshotCrawler(&interfaces.WebsiteSnapshot{
		URL: "https://acme.test", ImageURL: "https://acme.test/logo.png",
	}), &mockDetector{}, colors, nil, &mockLogger{})

	presence, err := svc.Website(context.Background(), "acme.test")
	require.NoError(t, err)
	assert.Equal(t, "#123456", presence.BrandColor)
}

func TestWebEnrichment_CrawlFailurePropagates(t *testing.T) {
	crawler := &mockCrawler{crawlFunc: func(ctx context.Context, siteURL string) (*interfaces.WebsiteSnapshot, error) {
		return nil, errors.New("connection refused")
	}}
	svc := NewWebEnrichmentServiceWith(crawler, &mockDetector{}, nil, nil, &mockLogger{})

	_, err := svc.Website(context.Background(), "acme.test")
	assert.Error(t, err)
	_, err = svc.Socials(context.Background(), "acme.test")
	assert.Error(t, err)
	_, err = svc.TechStack(context.Background(), "acme.test")
	assert.Error(t, err)
}

func TestWebEnrichment_SocialsAndTech(t *testing.T) {
	snap := &interfaces.WebsiteSnapshot{URL: "https://acme.test"}
	snap.Socials.LinkedIn = "https://linkedin.com/company/acme"
	svc := NewWebEnrichmentServiceWith(snapshotCrawler(snap), &mockDetector{}, nil, nil, &mockLogger{})

	socials, err := svc.Socials(context.Background(), "acme.test")
	require.NoError(t, err)
	assert.Equal(t, 1, socials.Count())

	stack, err := svc.TechStack(context.Background(), "acme.test")
	require.NoError(t, err)
	assert.Equal(t, []string{"WordPress"}, stack.CMS)
}

func TestWebEnrichment_AboutText(t *testing.T) {
	var visited []string
	about := &mockAbout{aboutFunc: func(ctx context.Context, pageURL string) (string, error) {
		visited = append(visited, pageURL)
		if pageURL == "https://acme.test/over-ons" {
			return "", errors.New("gone")
		}
		return "homepage text", nil
	}}
	svc := NewWebEnrichmentServiceWith(snapshotCrawler(&interfaces.WebsiteSnapshot{
		URL: "https://acme.test", AboutURL: "https://acme.test/over-ons",
	}), &mockDetector{}, nil, about, &mockLogger{})

	text, err := svc.AboutText(context.Background(), "acme.test")
	require.NoError(t, err)
	assert.Equal(t, "homepage text", text)
	assert.Equal(t, []string{"https://acme.test/over-ons", "https://acme.test"}, visited)
}
