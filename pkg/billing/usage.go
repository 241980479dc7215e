package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Granularity is the aggregation bucket size for usage queries.
type Granularity string

const (
	GranularityDaily  Granularity = "Daily"
	GranularityHourly Granularity = "Hourly"
)

// UsageOptions parameterize a usage-aggregate query.
type UsageOptions struct {
	SubscriptionID string
	Start          time.Time
	End            time.Time
	Granularity    Granularity
	ShowDetails    bool
}

func (o UsageOptions) validate() error {
	if o.SubscriptionID == "" {
		return errors.New("subscription id is required")
	}
	switch o.Granularity {
	case GranularityDaily, GranularityHourly:
	default:
		return fmt.Errorf("granularity must be %s or %s, got %q", GranularityDaily, GranularityHourly, o.Granularity)
	}
	if !o.Start.Before(o.End) {
		return errors.New("start time must be before end time")
	}
	return nil
}

// normalizeReportTime snaps t to the boundary the granularity
// requires: midnight UTC for daily buckets, the top of the hour for
// hourly ones. The commerce API rejects unaligned timestamps.
func normalizeReportTime(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	if g == GranularityDaily {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t.Truncate(time.Hour)
}

// UsageAggregates queries Microsoft.Commerce/UsageAggregates for the
// subscription and returns the provider JSON untouched.
func (c *Client) UsageAggregates(ctx context.Context, opts UsageOptions) (json.RawMessage, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("api-version", usageAPIVersion)
	query.Set("reportedStartTime", normalizeReportTime(opts.Start, opts.Granularity).Format(time.RFC3339))
	query.Set("reportedEndTime", normalizeReportTime(opts.End, opts.Granularity).Format(time.RFC3339))
	query.Set("aggregationGranularity", string(opts.Granularity))
	query.Set("showDetails", strconv.FormatBool(opts.ShowDetails))

	path := fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Commerce/UsageAggregates", opts.SubscriptionID)
	return c.get(ctx, path, query)
}
