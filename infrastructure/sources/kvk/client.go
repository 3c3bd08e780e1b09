// ABOUTME: Business registry client for KVK-style search and base profile APIs
// ABOUTME: Maps registry JSON onto domain search results, identities, directors and relations

package kvk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/infrastructure/sources/internal/upstream"
	"kvk-insights-api/pkg/config"
	timeutil "kvk-insights-api/pkg/utils/time"
)

const apiName = "kvk"

// pageSize is what the registry is asked for; the resolver caps further
const pageSize = 20

// Client talks to the registry over HTTP with an apikey header
type Client struct {
	baseURL string
	apiKey  string
	http    interfaces.HTTPClient
	logger  interfaces.Logger
}

// NewClient creates a registry client
func NewClient(cfg config.SourceConfig, httpClient interfaces.HTTPClient, logger interfaces.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) header() map[string]string {
	return map[string]string{"apikey": c.apiKey, "Accept": "application/json"}
}

// Search queries the registry's search endpoint. The registry answers 404
// when nothing matches; that is reported as an empty result.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("resultatenPerPagina", strconv.Itoa(pageSize))
	params.Set("pagina", "1")

	switch query.Type {
	case domain.SearchByName:
		params.Set("naam", query.Text)
	case domain.SearchByRegistrationNumber:
		params.Set("kvkNummer", query.Text)
	case domain.SearchByPostalCode:
		params.Set("postcode", query.PostalCode)
	case domain.SearchByIndustryCode:
		params.Set("sbiCode", query.IndustryCode)
	}
	if query.City != "" {
		params.Set("plaats", query.City)
	}
	if query.PostalCode != "" && query.Type != domain.SearchByPostalCode {
		params.Set("postcode", query.PostalCode)
	}
	if query.IncludeInactive {
		params.Set("inclusiefInactieveRegistraties", "true")
	}

	var resp searchResponse
	err := upstream.GetJSON(ctx, c.http, apiName, c.baseURL+"/v2/zoeken?"+params.Encode(), c.header(), "search", query.Text, &resp)
	if coreerrors.IsNotFound(err) {
		return []domain.SearchResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, r.toDomain())
	}

	c.logger.Debug("Registry search completed", map[string]interface{}{
		"type":    string(query.Type),
		"total":   resp.Total,
		"results": len(results),
	})

	return results, nil
}

// BaseProfile fetches identity, address and websites
func (c *Client) BaseProfile(ctx context.Context, kvkNumber string) (*domain.RegistryRecord, error) {
	var resp baseProfileResponse
	endpoint := fmt.Sprintf("%s/v1/basisprofielen/%s?geoData=true", c.baseURL, url.PathEscape(kvkNumber))
	if err := upstream.GetJSON(ctx, c.http, apiName, endpoint, c.header(), "company", kvkNumber, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// Officers fetches current and former directors
func (c *Client) Officers(ctx context.Context, kvkNumber string) ([]domain.Director, error) {
	var resp officersResponse
	endpoint := fmt.Sprintf("%s/v1/basisprofielen/%s/functionarissen", c.baseURL, url.PathEscape(kvkNumber))
	if err := upstream.GetJSON(ctx, c.http, apiName, endpoint, c.header(), "officers", kvkNumber, &resp); err != nil {
		return nil, err
	}

	directors := make([]domain.Director, 0, len(resp.Officers))
	for _, o := range resp.Officers {
		directors = append(directors, domain.Director{
			Name:          o.Name,
			Role:          o.Role,
			Authority:     o.Authority,
			StartDate:     timeutil.ParseDate(o.Start),
			EndDate:       timeutil.ParseDate(o.End),
			NaturalPerson: o.NaturalPerson,
		})
	}
	return directors, nil
}

// Relations fetches the one-hop ownership graph
func (c *Client) Relations(ctx context.Context, kvkNumber string) (*domain.Relations, error) {
	var resp relationsResponse
	endpoint := fmt.Sprintf("%s/v1/basisprofielen/%s/relaties", c.baseURL, url.PathEscape(kvkNumber))
	if err := upstream.GetJSON(ctx, c.http, apiName, endpoint, c.header(), "relations", kvkNumber, &resp); err != nil {
		return nil, err
	}

	rel := &domain.Relations{
		Subsidiaries: make([]domain.RelatedEntity, 0, len(resp.Subsidiaries)),
		Related:      make([]domain.RelatedEntity, 0, len(resp.Related)),
	}
	if resp.Parent != nil {
		p := resp.Parent.toDomain(domain.RelationParent)
		rel.Parent = &p
	}
	for _, s := range resp.Subsidiaries {
		rel.Subsidiaries = append(rel.Subsidiaries, s.toDomain(domain.RelationSubsidiary))
	}
	for _, r := range resp.Related {
		rel.Related = append(rel.Related, r.toDomain(domain.RelationRelated))
	}
	return rel, nil
}
