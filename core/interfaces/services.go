// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the website crawl and the enrichments derived from it

package interfaces

import (
	"context"

	"kvk-insights-api/core/domain"
)

// WebsiteSnapshot is what a single crawl of a company website yields
type WebsiteSnapshot struct {
	URL         string
	Title       string
	Description string
	Email       string
	Phone       string
	ThemeColor  string
	// ImageURL is the og:image or logo used for brand colour extraction
	ImageURL  string
	AboutURL  string
	Socials   domain.SocialProfiles
	Generator string
	Scripts   []string
	Links     []string
	HTML      string
	Headers   map[string]string
}

// WebsiteService crawls a company website once and shares the result
type WebsiteService interface {
	Crawl(ctx context.Context, siteURL string) (*WebsiteSnapshot, error)
}

// TechStackDetector derives technology tags from a crawl
type TechStackDetector interface {
	Detect(snapshot *WebsiteSnapshot) *domain.TechStack
}

// BrandColorService extracts the dominant colour of a logo or hero image
type BrandColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (string, error)
}

// AboutReader extracts readable "about us" text for the narrative prompt
type AboutReader interface {
	About(ctx context.Context, pageURL string) (string, error)
}

// WebEnricher turns one shared crawl into the website, socials and tech
// stack sections. Each method may be called concurrently for the same site.
type WebEnricher interface {
	Website(ctx context.Context, siteURL string) (*domain.WebPresence, error)
	Socials(ctx context.Context, siteURL string) (*domain.SocialProfiles, error)
	TechStack(ctx context.Context, siteURL string) (*domain.TechStack, error)
	// AboutText returns readable text from the about page, or the homepage
	AboutText(ctx context.Context, siteURL string) (string, error)
}
