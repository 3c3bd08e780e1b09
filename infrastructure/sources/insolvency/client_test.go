package insolvency

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvk-insights-api/core/domain"
	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/infrastructure/http/standard"
	"kvk-insights-api/pkg/config"
)

const endpoint = "https://insolventies.test/v1/insolventies/12345678"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpClient := standard.NewStandardHTTPClient(time.Second, standard.WithMaxRetries(1))
	httpmock.ActivateNonDefault(httpClient.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient(config.SourceConfig{BaseURL: "https://insolventies.test", APIKey: "k"}, httpClient)
}

func TestClient_LegalStatus_Bankrupt(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `{
			"faillissement": {"datum": "2023-01-05", "kenmerk": "F.13/23/12", "omschrijving": "Uitspraak faillissement"},
			"surseance": null,
			"publicaties": [
				{"datum": "2021-06-01", "type": "jaarrekening"},
				{"datum": "2022-02-01", "type": "statutenwijziging", "omschrijving": "Statuten gewijzigd"},
				{"datum": "", "type": "onbekend"}
			]
		}`))

	status, err := client.LegalStatus(context.Background(), "12345678")
	require.NoError(t, err)

	require.NotNil(t, status.Bankruptcy)
	assert.Equal(t, domain.LegalBankruptcy, status.Bankruptcy.Type)
	assert.Equal(t, "F.13/23/12", status.Bankruptcy.Reference)
	assert.Nil(t, status.Suspension)
	assert.Nil(t, status.Dissolution)
	assert.Equal(t, domain.RiskHigh, status.Risk)

	require.Len(t, status.Announcements, 2)
	assert.Equal(t, "Statuten gewijzigd", status.Announcements[0].Description)
	assert.Equal(t, "jaarrekening", status.Announcements[1].Description)
}

func TestClient_LegalStatus_Clean(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `{}`))

	status, err := client.LegalStatus(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, status.Risk)
	assert.NotNil(t, status.Announcements)
}

func TestClient_LegalStatus_Unavailable(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err := client.LegalStatus(context.Background(), "12345678")
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestClient_LegalStatus_Timeout(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.LegalStatus(ctx, "12345678")
	assert.Error(t, err)
}

func TestClient_LegalStatus_UnknownCompanyIsClean(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	status, err := client.LegalStatus(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Nil(t, status.Bankruptcy)
	assert.Equal(t, domain.RiskLow, status.Risk)
}
