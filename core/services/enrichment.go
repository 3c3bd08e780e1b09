// ABOUTME: Web enrichment service combining the crawl, brand colour, tech detection and about text
// ABOUTME: Every section is derived from the same cached crawl of the company website

package services

import (
	"context"

	"kvk-insights-api/core/domain"
	"kvk-insights-api/core/interfaces"
)

// WebEnrichmentService implements WebEnricher
type WebEnrichmentService struct {
	crawler interfaces.WebsiteService
	tech    interfaces.TechStackDetector
	colors  interfaces.BrandColorService
	about   interfaces.AboutReader
	logger  interfaces.Logger
}

// NewWebEnrichmentService wires the default crawler, detector, colour
// extractor and about reader onto deps
func NewWebEnrichmentService(deps interfaces.Dependencies) *WebEnrichmentService {
	return NewWebEnrichmentServiceWith(
		NewWebsiteCrawler(deps),
		NewTechDetector(),
		NewBrandColorExtractor(deps),
		NewAboutPageReader(deps),
		deps.Logger,
	)
}

// NewWebEnrichmentServiceWith builds the service from explicit parts
func NewWebEnrichmentServiceWith(crawler interfaces.WebsiteService, tech interfaces.TechStackDetector,
	colors interfaces.BrandColorService, about interfaces.AboutReader, logger interfaces.Logger) *WebEnrichmentService {
	return &WebEnrichmentService{
		crawler: crawler,
		tech:    tech,
		colors:  colors,
		about:   about,
		logger:  logger,
	}
}

// Website returns contact details and brand colour. The theme-color meta tag
// wins over the colour extracted from the share image.
func (s *WebEnrichmentService) Website(ctx context.Context, siteURL string) (*domain.WebPresence, error) {
	snap, err := s.crawler.Crawl(ctx, siteURL)
	if err != nil {
		return nil, err
	}

	presence := &domain.WebPresence{
		Website:     snap.URL,
		Email:       snap.Email,
		Phone:       snap.Phone,
		Description: snap.Description,
		BrandColor:  NormalizeHexColor(snap.ThemeColor),
	}
	if presence.Description == "" {
		presence.Description = snap.Title
	}

	if presence.BrandColor == "" && snap.ImageURL != "" && s.colors != nil {
		if color, err := s.colors.ExtractColor(ctx, snap.ImageURL); err == nil {
			presence.BrandColor = color
		}
	}

	return presence, nil
}

// Socials returns the social profiles linked from the site
func (s *WebEnrichmentService) Socials(ctx context.Context, siteURL string) (*domain.SocialProfiles, error) {
	snap, err := s.crawler.Crawl(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	socials := snap.Socials
	return &socials, nil
}

// TechStack returns the technologies detected on the site
func (s *WebEnrichmentService) TechStack(ctx context.Context, siteURL string) (*domain.TechStack, error) {
	snap, err := s.crawler.Crawl(ctx, siteURL)
	if err != nil {
		return nil, err
	}
	return s.tech.Detect(snap), nil
}

// AboutText prefers the linked about page and falls back to the homepage
func (s *WebEnrichmentService) AboutText(ctx context.Context, siteURL string) (string, error) {
	snap, err := s.crawler.Crawl(ctx, siteURL)
	if err != nil {
		return "", err
	}

	if snap.AboutURL != "" {
		text, err := s.about.About(ctx, snap.AboutURL)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil && s.logger != nil {
			s.logger.Debug("About page unreadable, using homepage", map[string]interface{}{
				"url":   snap.AboutURL,
				"error": err.Error(),
			})
		}
	}
	return s.about.About(ctx, snap.URL)
}
