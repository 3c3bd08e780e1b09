// ABOUTME: Brand colour extraction from a company logo or share image
// ABOUTME: Uses K-means clustering to find the most prominent colour, returned as hex

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp" // WebP support

	"kvk-insights-api/core/interfaces"
)

const (
	brandColorCacheTTL = 7 * 24 * time.Hour
	maxImageSize       = 8 * 1024 * 1024
)

// BrandColorExtractor implements BrandColorService
type BrandColorExtractor struct {
	deps interfaces.Dependencies
}

// NewBrandColorExtractor creates a brand colour extractor
func NewBrandColorExtractor(deps interfaces.Dependencies) *BrandColorExtractor {
	return &BrandColorExtractor{deps: deps}
}

// ExtractColor returns the prominent colour of imageURL as "#rrggbb"
func (s *BrandColorExtractor) ExtractColor(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("empty image URL")
	}

	cacheKey := "brandColor:" + imageURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && len(data) == 7 {
			return string(data), nil
		}
	}

	color, err := s.extract(ctx, imageURL)
	if err != nil {
		s.deps.Logger.Debug("Failed to extract brand colour", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		return "", err
	}

	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(color), brandColorCacheTTL)
	}
	return color, nil
}

func (s *BrandColorExtractor) extract(ctx context.Context, imageURL string) (color string, err error) {
	// prominentcolor panics on some degenerate images
	defer func() {
		if rec := recover(); rec != nil {
			color = ""
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	parsedURL, parseErr := url.Parse(imageURL)
	if parseErr != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid image URL: %s", imageURL)
	}
	if strings.HasSuffix(strings.ToLower(parsedURL.Path), ".svg") {
		return "", fmt.Errorf("SVG images are not supported")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	img, _, err := image.Decode(io.LimitReader(body, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return "", fmt.Errorf("image has empty bounds")
	}
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(prominentcolor.DefaultK, nrgba, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, prominentcolor.GetDefaultMasks())
	if err != nil || len(colors) == 0 {
		// Logos are often mostly white or black, which the default masks remove
		colors, err = prominentcolor.KmeansWithAll(prominentcolor.DefaultK, nrgba, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
		if err != nil || len(colors) == 0 {
			return "", fmt.Errorf("no colors extracted from image")
		}
	}

	c := colors[0].Color
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R), uint8(c.G), uint8(c.B)), nil
}

// NormalizeHexColor accepts "#abc", "#aabbcc" and "aabbcc" and returns
// lowercase "#aabbcc", or "" for anything else
func NormalizeHexColor(s string) string {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return ""
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return ""
		}
	}
	return "#" + s
}
