// ABOUTME: Review aggregator client returning per-platform ratings for a company
// ABOUTME: The count-weighted average is recomputed locally from the platform list

package reviews

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/infrastructure/sources/internal/upstream"
	"kvk-insights-api/pkg/config"
	"kvk-insights-api/pkg/utils/parse"
)

const apiName = "reviews"

// Client queries the review aggregator
type Client struct {
	baseURL string
	apiKey  string
	http    interfaces.HTTPClient
}

// NewClient creates a review aggregator client
func NewClient(cfg config.SourceConfig, httpClient interfaces.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

type response struct {
	Platforms []struct {
		Platform string `json:"platform"`
		Rating   score  `json:"score"`
		Count    count  `json:"aantal"`
		URL      string `json:"url"`
	} `json:"platforms"`
}

// score accepts 4.5 as well as "4,5"; some platforms report ratings as
// Dutch-formatted strings
type score float64

func (s *score) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*s = score(parse.FloatOrZero(text))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = score(f)
	return nil
}

// count accepts 1234 as well as "1.234"
type count int

func (c *count) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*c = count(parse.IntOrZero(strings.ReplaceAll(text, ".", "")))
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = count(n)
	return nil
}

// Reviews looks up ratings by trade name and city
func (c *Client) Reviews(ctx context.Context, companyName, city string) (*domain.Reviews, error) {
	params := url.Values{}
	params.Set("naam", companyName)
	if city != "" {
		params.Set("plaats", city)
	}
	endpoint := c.baseURL + "/v1/reviews?" + params.Encode()
	header := map[string]string{"X-Api-Key": c.apiKey}

	var resp response
	if err := upstream.GetJSON(ctx, c.http, apiName, endpoint, header, "", "", &resp); err != nil {
		return nil, err
	}

	out := &domain.Reviews{Platforms: make([]domain.PlatformRating, 0, len(resp.Platforms))}
	for _, p := range resp.Platforms {
		rating := float64(p.Rating)
		if p.Platform == "" || rating <= 0 {
			continue
		}
		out.Platforms = append(out.Platforms, domain.PlatformRating{
			Platform: strings.ToLower(p.Platform),
			Rating:   clampRating(rating),
			Count:    int(p.Count),
			URL:      p.URL,
		})
	}
	out.Recompute()

	return out, nil
}

func clampRating(r float64) float64 {
	if r < 1 {
		return 1
	}
	if r > 5 {
		return 5
	}
	return r
}
