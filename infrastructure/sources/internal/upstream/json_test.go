package upstream

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/infrastructure/http/standard"
)

func newMockedClient(t *testing.T) *standard.StandardHTTPClient {
	t.Helper()
	client := standard.NewStandardHTTPClient(time.Second, standard.WithMaxRetries(1))
	httpmock.ActivateNonDefault(client.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestGetJSON(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodGet, "https://api.test/ok",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("apikey") != "k" {
				return httpmock.NewStringResponse(http.StatusUnauthorized, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]string{"naam": "Acme"})
		})
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/missing",
		httpmock.NewStringResponder(http.StatusNotFound, `{"fout":"niet gevonden"}`))
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/down",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "maintenance"))
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/garbage",
		httpmock.NewStringResponder(http.StatusOK, "<html>"))

	ctx := context.Background()
	header := map[string]string{"apikey": "k"}

	var out struct {
		Naam string `json:"naam"`
	}
	require.NoError(t, GetJSON(ctx, client, "kvk", "https://api.test/ok", header, "company", "1", &out))
	assert.Equal(t, "Acme", out.Naam)

	err := GetJSON(ctx, client, "kvk", "https://api.test/missing", header, "company", "1", &out)
	assert.True(t, coreerrors.IsNotFound(err))

	err = GetJSON(ctx, client, "kvk", "https://api.test/down", header, "company", "1", &out)
	var apiErr *coreerrors.ExternalAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "maintenance")

	err = GetJSON(ctx, client, "kvk", "https://api.test/garbage", header, "company", "1", &out)
	assert.Error(t, err)
	assert.False(t, coreerrors.IsExternalAPI(err))
}

func TestGetJSON_NotFoundWithoutResourceIsAPIError(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/missing",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	var out map[string]interface{}
	err := GetJSON(context.Background(), client, "reviews", "https://api.test/missing", nil, "", "", &out)
	assert.True(t, coreerrors.IsExternalAPI(err))
}

func TestPostJSON(t *testing.T) {
	client := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "https://api.test/chat",
		func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("Content-Type") != "application/json" || req.Header.Get("Authorization") != "Bearer t" {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]int{"n": 1})
		})

	var out struct {
		N int `json:"n"`
	}
	err := PostJSON(context.Background(), client, "llm", "https://api.test/chat",
		map[string]string{"Authorization": "Bearer t"}, map[string]string{"q": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.N)
}
