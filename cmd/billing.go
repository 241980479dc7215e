package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Azure/subscription-copilot/pkg/billing"
	"github.com/Azure/subscription-copilot/pkg/logger"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Acquire an Authorization header for the billing API",
	RunE: func(cmd *cobra.Command, args []string) error {
		useOAuth, _ := cmd.Flags().GetBool("oauth")
		resource, _ := cmd.Flags().GetString("resource")

		auth, err := acquireBillingAuth(cmd, useOAuth, resource)
		if err != nil {
			return err
		}
		fmt.Println(auth)
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Query usage aggregates for the active subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")
		granularity, _ := cmd.Flags().GetString("granularity")
		details, _ := cmd.Flags().GetBool("details")

		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return fmt.Errorf("parsing --start: %w", err)
		}
		end := time.Now().UTC()
		if endStr != "" {
			end, err = time.Parse(time.RFC3339, endStr)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
		}

		client, subscriptionID, err := billingClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.UsageAggregates(cmd.Context(), billing.UsageOptions{
			SubscriptionID: subscriptionID,
			Start:          start,
			End:            end,
			Granularity:    billing.Granularity(granularity),
			ShowDetails:    details,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

var rateCardCmd = &cobra.Command{
	Use:   "ratecard",
	Short: "Query the rate card for the active subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		offer, _ := cmd.Flags().GetString("offer")
		currency, _ := cmd.Flags().GetString("currency")
		locale, _ := cmd.Flags().GetString("locale")
		region, _ := cmd.Flags().GetString("region")

		client, subscriptionID, err := billingClient(cmd)
		if err != nil {
			return err
		}
		raw, err := client.RateCard(cmd.Context(), billing.RateCardOptions{
			SubscriptionID: subscriptionID,
			OfferID:        offer,
			Currency:       currency,
			Locale:         locale,
			Region:         region,
		})
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

// acquireBillingAuth exchanges the configured service principal
// credential for an Authorization header value.
func acquireBillingAuth(cmd *cobra.Command, useOAuth bool, resource string) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	cred := cfg.Credential()
	if cred == nil {
		return "", fmt.Errorf("token acquisition needs a service principal, set %s, %s and %s", envTenantID, envClientID, envClientSecret)
	}

	opts := billing.TokenOptions{
		TenantID:     cred.TenantID,
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		Resource:     resource,
	}
	if useOAuth {
		return billing.AcquireTokenOAuth(cmd.Context(), nil, opts)
	}
	return billing.AcquireToken(cmd.Context(), nil, opts)
}

// billingClient establishes the session to resolve the active
// subscription, then builds a commerce client authorized for it.
func billingClient(cmd *cobra.Command) (*billing.Client, string, error) {
	sess := newSession(nil)
	if err := establish(cmd, sess); err != nil {
		return nil, "", fmt.Errorf("establishing session: %w", err)
	}
	login, err := sess.Active()
	if err != nil {
		return nil, "", err
	}

	useOAuth, _ := cmd.Flags().GetBool("oauth")
	auth, err := acquireBillingAuth(cmd, useOAuth, billing.ManagementEndpoint+"/")
	if err != nil {
		return nil, "", err
	}
	logger.Debugf("billing client scoped to subscription %s", login.SubscriptionID)
	return billing.NewClient(nil, "", auth), login.SubscriptionID, nil
}

func init() {
	tokenCmd.Flags().Bool("oauth", false, "Use the OAuth2 client-credentials grant instead of the tenant token exchange")
	tokenCmd.Flags().String("resource", billing.ManagementEndpoint+"/", "Resource the token is acquired for")

	usageCmd.Flags().String("start", "", "Reported period start (RFC3339)")
	usageCmd.Flags().String("end", "", "Reported period end (RFC3339), defaults to now")
	usageCmd.Flags().String("granularity", string(billing.GranularityDaily), "Aggregation granularity: Daily or Hourly")
	usageCmd.Flags().Bool("details", false, "Include per-instance detail")
	usageCmd.Flags().Bool("oauth", false, "Use the OAuth2 client-credentials grant for authorization")
	usageCmd.MarkFlagRequired("start")

	rateCardCmd.Flags().String("offer", "MS-AZR-0003P", "Offer durable ID (MS-AZR-*)")
	rateCardCmd.Flags().String("currency", "USD", "3-character currency code")
	rateCardCmd.Flags().String("locale", "enUS", "4-character locale code")
	rateCardCmd.Flags().String("region", "US", "2-character region code")
	rateCardCmd.Flags().Bool("oauth", false, "Use the OAuth2 client-credentials grant for authorization")
}
