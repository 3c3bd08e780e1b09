// ABOUTME: Shared request and decoding helpers for the upstream source clients
// ABOUTME: Maps upstream HTTP status codes onto the core error taxonomy

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	coreerrors "kvk-insights-api/core/errors"
	"kvk-insights-api/core/interfaces"
)

// maxBody bounds how much of an upstream response is read
const maxBody = 5 << 20

// GetJSON performs a GET and decodes a 2xx JSON body into out.
// A 404 becomes a NotFoundError for resource/id; other non-2xx statuses
// become an ExternalAPIError tagged with api.
func GetJSON(ctx context.Context, client interfaces.HTTPClient, api, url string, header map[string]string, resource, id string, out interface{}) error {
	resp, err := client.Do(ctx, interfaces.Request{Method: http.MethodGet, URL: url, Header: header})
	if err != nil {
		return err
	}
	return decode(resp, api, resource, id, out)
}

// PostJSON marshals in, POSTs it and decodes a 2xx JSON body into out
func PostJSON(ctx context.Context, client interfaces.HTTPClient, api, url string, header map[string]string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", api, err)
	}

	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range header {
		h[k] = v
	}

	resp, err := client.Do(ctx, interfaces.Request{Method: http.MethodPost, URL: url, Header: h, Body: bytes.NewReader(payload)})
	if err != nil {
		return err
	}
	return decode(resp, api, "", "", out)
}

func decode(resp interfaces.Response, api, resource, id string, out interface{}) error {
	body := resp.Body()
	defer body.Close()

	status := resp.StatusCode()
	if status == http.StatusNotFound && resource != "" {
		return &coreerrors.NotFoundError{Resource: resource, ID: id}
	}
	if status < 200 || status > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return &coreerrors.ExternalAPIError{
			StatusCode: status,
			Message:    http.StatusText(status) + trimSnippet(snippet),
			API:        api,
		}
	}

	if err := json.NewDecoder(io.LimitReader(body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", api, err)
	}
	return nil
}

func trimSnippet(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	return ": " + string(b)
}
