package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// List returns every subscription visible to the signed-in principal,
// in the order Azure Resource Manager reports them.
func (c *Client) List(ctx context.Context) ([]SubscriptionInfo, error) {
	if c.cred == nil {
		return nil, ErrNotLoggedIn
	}
	return list(ctx, c.cred, c.opts)
}

func list(ctx context.Context, cred azcore.TokenCredential, opts *arm.ClientOptions) ([]SubscriptionInfo, error) {
	client, err := armsubscriptions.NewClient(cred, opts)
	if err != nil {
		return nil, fmt.Errorf("creating subscriptions client: %w", err)
	}

	var out []SubscriptionInfo
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			info := SubscriptionInfo{}
			if sub.SubscriptionID != nil {
				info.ID = *sub.SubscriptionID
			}
			if sub.DisplayName != nil {
				info.Name = *sub.DisplayName
			}
			if sub.State != nil {
				info.State = string(*sub.State)
			}
			if sub.TenantID != nil {
				info.TenantID = *sub.TenantID
			}
			out = append(out, info)
		}
	}
	return out, nil
}

// resolve picks the subscription matching name (display name first,
// then subscription ID). An empty name selects the first entry.
func resolve(subs []SubscriptionInfo, name string) (SubscriptionInfo, error) {
	if len(subs) == 0 {
		return SubscriptionInfo{}, fmt.Errorf("the signed-in principal has no visible subscriptions")
	}
	if name == "" {
		return subs[0], nil
	}
	for _, sub := range subs {
		if sub.Name == name {
			return sub, nil
		}
	}
	for _, sub := range subs {
		if sub.ID == name {
			return sub, nil
		}
	}
	return SubscriptionInfo{}, fmt.Errorf("subscription %q not found for this account", name)
}
