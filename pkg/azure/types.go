package azure

import "github.com/Azure/azure-sdk-for-go/sdk/azcore"

// AccountType says what kind of principal is signed in.
type AccountType string

const (
	// AccountTypeUser is an email-based login picked up from the
	// ambient environment (CLI cache, managed identity, ...).
	AccountTypeUser AccountType = "user"
	// AccountTypeServicePrincipal is a client ID + secret login.
	AccountTypeServicePrincipal AccountType = "servicePrincipal"
)

// Credential identifies a service principal. A nil or zero Credential
// means "use whatever the environment provides".
type Credential struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// IsZero reports whether no explicit credential was supplied.
func (c *Credential) IsZero() bool {
	return c == nil || (c.TenantID == "" && c.ClientID == "" && c.ClientSecret == "")
}

// SubscriptionInfo is one entry of the account listing.
type SubscriptionInfo struct {
	ID       string
	Name     string
	State    string
	TenantID string
}

// LoginContext is the result of a successful login or subscription
// switch: the subscription the session is scoped to plus the token
// credential that backs further calls.
type LoginContext struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	Account          AccountType
	Credential       azcore.TokenCredential
}
