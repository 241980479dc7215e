package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenOptions identify the service principal used for token
// acquisition.
type TokenOptions struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// Resource is the API the token is for, e.g. the management
	// endpoint. For the OAuth2 path it is turned into a ".default"
	// scope.
	Resource string
	// Endpoint overrides the identity endpoint, for tests.
	Endpoint string
}

func (o TokenOptions) validate() error {
	if o.TenantID == "" || o.ClientID == "" || o.ClientSecret == "" {
		return errors.New("tenant id, client id and client secret are all required")
	}
	return nil
}

func (o TokenOptions) endpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return LoginEndpoint
}

// AcquireToken performs a client-credential exchange against the
// tenant-scoped identity endpoint and returns a ready Authorization
// header value.
func AcquireToken(ctx context.Context, httpClient *http.Client, opts TokenOptions) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {opts.ClientID},
		"client_secret": {opts.ClientSecret},
		"resource":      {opts.Resource},
	}
	tokenURL := fmt.Sprintf("%s/%s/oauth2/token", opts.endpoint(), opts.TenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling token endpoint: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		TokenType   string `json:"token_type"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response carried no access_token")
	}
	if payload.TokenType == "" {
		payload.TokenType = "Bearer"
	}
	return payload.TokenType + " " + payload.AccessToken, nil
}

// AcquireTokenOAuth runs the standard OAuth2 client-credentials grant
// against the shared v2.0 token endpoint and returns an Authorization
// header value.
func AcquireTokenOAuth(ctx context.Context, httpClient *http.Client, opts TokenOptions) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	cfg := clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", opts.endpoint(), opts.TenantID),
	}
	if opts.Resource != "" {
		cfg.Scopes = []string{strings.TrimSuffix(opts.Resource, "/") + "/.default"}
	}

	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("client credentials grant: %w", err)
	}
	return "Bearer " + tok.AccessToken, nil
}
