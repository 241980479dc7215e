// Package billing wraps the Azure Commerce REST endpoints: usage
// aggregates, rate card and the token exchange that authorizes them.
// Responses are provider-defined JSON and pass through unmodified.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// ManagementEndpoint is the public-cloud Resource Manager base URL.
	ManagementEndpoint = "https://management.azure.com"
	// LoginEndpoint is the public-cloud identity endpoint.
	LoginEndpoint = "https://login.microsoftonline.com"

	usageAPIVersion    = "2015-06-01-preview"
	rateCardAPIVersion = "2016-08-31-preview"
)

// Client issues commerce API requests authorized by a pre-acquired
// Authorization header value.
type Client struct {
	http          *http.Client
	endpoint      string
	authorization string
}

// NewClient builds a billing client. httpClient may be nil, in which
// case http.DefaultClient is used; endpoint may be empty for the
// public cloud.
func NewClient(httpClient *http.Client, endpoint, authorization string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = ManagementEndpoint
	}
	return &Client{http: httpClient, endpoint: endpoint, authorization: authorization}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", c.authorization)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.RawMessage(body), nil
}
