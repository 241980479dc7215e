package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

var offerPattern = regexp.MustCompile(`^MS-AZR-[0-9A-Za-z]+$`)

// RateCardOptions parameterize a rate-card query.
type RateCardOptions struct {
	SubscriptionID string
	// OfferID is the durable offer id, always of the form MS-AZR-*.
	OfferID string
	// Currency is a 3-character currency code, e.g. USD.
	Currency string
	// Locale is a 4-character locale code.
	Locale string
	// Region is a 2-character region code, e.g. US.
	Region string
}

func (o RateCardOptions) validate() error {
	if o.SubscriptionID == "" {
		return errors.New("subscription id is required")
	}
	if !offerPattern.MatchString(o.OfferID) {
		return fmt.Errorf("offer id %q does not match MS-AZR-*", o.OfferID)
	}
	if len(o.Currency) != 3 {
		return fmt.Errorf("currency %q must be 3 characters", o.Currency)
	}
	if len(o.Locale) != 4 {
		return fmt.Errorf("locale %q must be 4 characters", o.Locale)
	}
	if len(o.Region) != 2 {
		return fmt.Errorf("region %q must be 2 characters", o.Region)
	}
	return nil
}

// RateCard queries Microsoft.Commerce/RateCard for the subscription
// and returns the provider JSON untouched.
func (c *Client) RateCard(ctx context.Context, opts RateCardOptions) (json.RawMessage, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	filter := fmt.Sprintf(
		"OfferDurableId eq '%s' and Currency eq '%s' and Locale eq '%s' and RegionInfo eq '%s'",
		opts.OfferID, opts.Currency, opts.Locale, opts.Region,
	)
	query := url.Values{}
	query.Set("api-version", rateCardAPIVersion)
	query.Set("$filter", filter)

	path := fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Commerce/RateCard", opts.SubscriptionID)
	return c.get(ctx, path, query)
}
