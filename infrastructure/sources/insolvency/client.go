// ABOUTME: Insolvency register client for bankruptcy, suspension and dissolution records
// ABOUTME: Returns the legal status section with its derived risk tier

package insolvency

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
	timeutil "kvk-insights-api/pkg/utils/time"
)

const apiName = "insolventies"

// Client queries the insolvency register
type Client struct {
	baseURL string
	apiKey  string
	http    interfaces.HTTPClient
}

// NewClient creates an insolvency register client
func NewClient(cfg config.SourceConfig, httpClient interfaces.HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
	}
}

type record struct {
	Date        string `json:"datum"`
	Reference   string `json:"kenmerk"`
	Description string `json:"omschrijving"`
	URL         string `json:"url"`
}

type response struct {
	Bankruptcy    *record `json:"faillissement"`
	Suspension    *record `json:"surseance"`
	Dissolution   *record `json:"ontbinding"`
	Announcements []struct {
		record
		Type string `json:"type"`
	} `json:"publicaties"`
}

// LegalStatus fetches the register entries for a company. A company the
// register has never heard of has a clean status, not a missing one.
func (c *Client) LegalStatus(ctx context.Context, kvkNumber string) (*domain.LegalStatus, error) {
	var resp response
	endpoint := fmt.Sprintf("%s/v1/insolventies/%s", c.baseURL, url.PathEscape(kvkNumber))
	header := map[string]string{"Authorization": "Bearer " + c.apiKey}

	err := upstream.GetJSON(ctx, c.http, apiName, endpoint, header, "insolvency record", kvkNumber, &resp)
	if err != nil && !coreerrors.IsNotFound(err) {
		return nil, err
	}

	status := &domain.LegalStatus{
		Bankruptcy:    toEvent(resp.Bankruptcy, domain.LegalBankruptcy),
		Suspension:    toEvent(resp.Suspension, domain.LegalSuspension),
		Dissolution:   toEvent(resp.Dissolution, domain.LegalDissolution),
		Announcements: make([]domain.LegalEvent, 0, len(resp.Announcements)),
	}
	for _, a := range resp.Announcements {
		ev := toEvent(&a.record, domain.LegalAnnouncement)
		if ev == nil {
			continue
		}
		if ev.Description == "" {
			ev.Description = a.Type
		}
		status.Announcements = append(status.Announcements, *ev)
	}
	sort.SliceStable(status.Announcements, func(i, j int) bool {
		return status.Announcements[i].Date.After(status.Announcements[j].Date)
	})

	status.Risk = status.DeriveRisk()
	return status, nil
}

// toEvent drops records without a usable date
func toEvent(r *record, typ domain.LegalEventType) *domain.LegalEvent {
	if r == nil {
		return nil
	}
	date := timeutil.ParseFlexibleTime(r.Date)
	if date.IsZero() {
		return nil
	}
	return &domain.LegalEvent{
		Type:        typ,
		Date:        date,
		Description: r.Description,
		Reference:   r.Reference,
		URL:         r.URL,
	}
}
