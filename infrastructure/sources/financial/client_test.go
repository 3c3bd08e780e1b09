package financial

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

const endpoint = "https://risk.test/v1/bedrijven/12345678/risico"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpClient := standard.NewStandardHTTPClient(time.Second, standard.WithMaxRetries(1))
	httpmock.ActivateNonDefault(httpClient.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient(config.SourceConfig{BaseURL: "https://risk.test/", APIKey: "k"}, httpClient)
}

func TestClient_Indicators(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusOK, `{
			"kredietscore": 140,
			"betaalgedrag": "goed",
			"risicoklasse": "A",
			"werknemers": [{"jaar": 2023, "aantal": 12}, {"jaar": 2021, "aantal": 8}, {"jaar": 0, "aantal": 1}]
		}`))

	ind, err := client.Indicators(context.Background(), "12345678")
	require.NoError(t, err)

	require.NotNil(t, ind.CreditScore)
	assert.Equal(t, 100, *ind.CreditScore)
	assert.Equal(t, "goed", ind.PaymentBehaviour)
	assert.Equal(t, domain.RiskLow, ind.Risk)
	assert.Equal(t, []domain.EmployeeCount{{Year: 2021, Count: 8}, {Year: 2023, Count: 12}}, ind.EmployeeHistory)
}

func TestClient_Indicators_NotCovered(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	ind, err := client.Indicators(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Nil(t, ind.CreditScore)
}

func TestClient_Indicators_ProviderDown(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, endpoint,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "maintenance"))

	_, err := client.Indicators(context.Background(), "12345678")
	require.Error(t, err)
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestRiskTier(t *testing.T) {
	assert.Equal(t, domain.RiskMedium, riskTier("Gemiddeld"))
	assert.Equal(t, domain.RiskHigh, riskTier("d"))
	assert.Equal(t, domain.RiskUnknown, riskTier(""))
}
