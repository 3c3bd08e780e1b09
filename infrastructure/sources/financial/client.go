// ABOUTME: Financial-risk provider client for credit score, payment behaviour and headcount history
// ABOUTME: Local heuristics such as company age are added later by the profile aggregator

package financial

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/infrastructure/sources/internal/upstream"
	"kvk-insights-api/pkg/config"
)

const apiName = "financieel"

// Client queries the financial-risk provider
type Client struct {
	baseURL string
	apiKey  string
	http    interfaces.HTTPClient
}

// NewClient creates a financial-risk provider client
func NewClient(cfg config.SourceConfig, httpClient interfaces.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

type response struct {
	CreditScore      *int   `json:"kredietscore"`
	PaymentBehaviour string `json:"betaalgedrag"`
	RiskClass        string `json:"risicoklasse"`
	Employees        []struct {
		Year  int `json:"jaar"`
		Count int `json:"aantal"`
	} `json:"werknemers"`
}

// Indicators fetches provider data. Companies the provider does not cover
// yield empty indicators rather than an error.
func (c *Client) Indicators(ctx context.Context, kvkNumber string) (*domain.FinancialIndicators, error) {
	var resp response
	endpoint := fmt.Sprintf("%s/v1/bedrijven/%s/risico", c.baseURL, url.PathEscape(kvkNumber))
	header := map[string]string{"X-Api-Key": c.apiKey}

	err := upstream.GetJSON(ctx, c.http, apiName, endpoint, header, "financial record", kvkNumber, &resp)
	if coreerrors.IsNotFound(err) {
		return &domain.FinancialIndicators{}, nil
	}
	if err != nil {
		return nil, err
	}

	ind := &domain.FinancialIndicators{
		CreditScore:      clampScore(resp.CreditScore),
		PaymentBehaviour: resp.PaymentBehaviour,
		Risk:             riskTier(resp.RiskClass),
	}
	for _, e := range resp.Employees {
		if e.Year == 0 {
			continue
		}
		ind.EmployeeHistory = append(ind.EmployeeHistory, domain.EmployeeCount{Year: e.Year, Count: e.Count})
	}
	sort.Slice(ind.EmployeeHistory, func(i, j int) bool {
		return ind.EmployeeHistory[i].Year < ind.EmployeeHistory[j].Year
	})

	return ind, nil
}

func clampScore(score *int) *int {
	if score == nil {
		return nil
	}
	v := *score
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}

// riskTier maps the provider's letter classes and Dutch labels onto tiers
func riskTier(class string) domain.RiskTier {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case "a", "laag", "low":
		return domain.RiskLow
	case "b", "gemiddeld", "medium":
		return domain.RiskMedium
	case "c", "d", "hoog", "high":
		return domain.RiskHigh
	default:
		return domain.RiskUnknown
	}
}
