package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"

	"github.com/webtools-dev/tsdiag/internal/diag"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// httpTypeCheckClient talks to an external type-check service over HTTP,
// the reference implementation of typecheck.Service. The external checker
// is assumed to be a same-host subprocess by default; when tokenSource is
// non-nil, requests carry a bearer token for the shared-service case.
type httpTypeCheckClient struct {
	endpoint    string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

// newHTTPTypeCheckClient returns a client posting batch requests to
// endpoint. If tokenSource is non-nil, every request is wrapped with an
// oauth2 bearer token obtained from it.
func newHTTPTypeCheckClient(endpoint string, tokenSource oauth2.TokenSource) *httpTypeCheckClient {
	client := &http.Client{}
	if tokenSource != nil {
		client = oauth2.NewClient(context.Background(), tokenSource)
	}
	return &httpTypeCheckClient{endpoint: endpoint, httpClient: client, tokenSource: tokenSource}
}

type typeCheckRequest struct {
	BatchID    string   `json:"batchId"`
	Specifiers []string `json:"specifiers"`
}

// GetDiagnostics implements typecheck.Service.
func (c *httpTypeCheckClient) GetDiagnostics(ctx context.Context, batchID string, specifiers []string) (map[string][]diag.TypeCheckDiagnostic, error) {
	body, err := json.Marshal(typeCheckRequest{BatchID: batchID, Specifiers: specifiers})
	if err != nil {
		return nil, fmt.Errorf("encoding type-check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building type-check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling type-check service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("type-check service returned status %d", resp.StatusCode)
	}

	var result map[string][]diag.TypeCheckDiagnostic
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding type-check response: %w", err)
	}
	return result, nil
}
