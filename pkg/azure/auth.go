package azure

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// ErrNotLoggedIn is returned when a call needs a credential but no
// login has happened in this process.
var ErrNotLoggedIn = errors.New("not logged in, run \"azsub login\" first")

// Client talks to Azure Resource Manager for login, subscription
// listing and subscription switching. The zero value is not usable;
// call NewClient.
type Client struct {
	opts *arm.ClientOptions

	cred    azcore.TokenCredential
	account AccountType
}

// NewClient returns a Client for the public cloud.
func NewClient() *Client {
	return &Client{}
}

// NewClientWithOptions is used by tests to point the client at a fake
// ARM endpoint.
func NewClientWithOptions(opts *arm.ClientOptions) *Client {
	return &Client{opts: opts}
}

// Login builds a token credential from cred (or the ambient
// environment when cred is empty), verifies it by listing
// subscriptions, and scopes the session to the named subscription.
// With an empty subscription name the first listed subscription wins.
func (c *Client) Login(ctx context.Context, cred *Credential, subscription string) (*LoginContext, error) {
	var (
		tok     azcore.TokenCredential
		account AccountType
		err     error
	)
	if cred.IsZero() {
		account = AccountTypeUser
		tok, err = azidentity.NewDefaultAzureCredential(nil)
	} else {
		account = AccountTypeServicePrincipal
		tok, err = azidentity.NewClientSecretCredential(cred.TenantID, cred.ClientID, cred.ClientSecret, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("building credential: %w", err)
	}

	subs, err := list(ctx, tok, c.opts)
	if err != nil {
		return nil, fmt.Errorf("authenticating against Azure Resource Manager: %w", err)
	}
	target, err := resolve(subs, subscription)
	if err != nil {
		return nil, err
	}

	c.cred = tok
	c.account = account
	return c.loginContext(target), nil
}

// Switch rescopes the session to another subscription the signed-in
// principal can see. Login must have succeeded first.
func (c *Client) Switch(ctx context.Context, name string) (*LoginContext, error) {
	if c.cred == nil {
		return nil, ErrNotLoggedIn
	}
	subs, err := list(ctx, c.cred, c.opts)
	if err != nil {
		return nil, fmt.Errorf("resolving subscription %q: %w", name, err)
	}
	target, err := resolve(subs, name)
	if err != nil {
		return nil, err
	}
	return c.loginContext(target), nil
}

func (c *Client) loginContext(sub SubscriptionInfo) *LoginContext {
	return &LoginContext{
		SubscriptionID:   sub.ID,
		SubscriptionName: sub.Name,
		TenantID:         sub.TenantID,
		Account:          c.account,
		Credential:       c.cred,
	}
}
