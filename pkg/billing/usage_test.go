package billing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeReportTime(t *testing.T) {
	in := time.Date(2024, 3, 5, 13, 42, 17, 0, time.UTC)

	tests := []struct {
		name        string
		granularity Granularity
		want        time.Time
	}{
		{"daily snaps to midnight", GranularityDaily, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"hourly snaps to top of hour", GranularityHourly, time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeReportTime(in, tt.granularity))
		})
	}
}

func TestNormalizeReportTimeConvertsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	in := time.Date(2024, 3, 5, 1, 30, 0, 0, zone)

	got := normalizeReportTime(in, GranularityDaily)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestUsageAggregates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subscriptions/sub-1/providers/Microsoft.Commerce/UsageAggregates", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "2015-06-01-preview", q.Get("api-version"))
		assert.Equal(t, "2024-03-01T00:00:00Z", q.Get("reportedStartTime"))
		assert.Equal(t, "2024-03-08T00:00:00Z", q.Get("reportedEndTime"))
		assert.Equal(t, "Daily", q.Get("aggregationGranularity"))
		assert.Equal(t, "true", q.Get("showDetails"))

		fmt.Fprint(w, `{"value":[]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "Bearer tok")
	raw, err := client.UsageAggregates(context.Background(), UsageOptions{
		SubscriptionID: "sub-1",
		Start:          time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC),
		End:            time.Date(2024, 3, 8, 18, 45, 0, 0, time.UTC),
		Granularity:    GranularityDaily,
		ShowDetails:    true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":[]}`, string(raw))
}

func TestUsageAggregatesValidation(t *testing.T) {
	client := NewClient(nil, "http://unused", "Bearer tok")
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts UsageOptions
	}{
		{"missing subscription", UsageOptions{Start: start, End: start.Add(time.Hour), Granularity: GranularityDaily}},
		{"bad granularity", UsageOptions{SubscriptionID: "s", Start: start, End: start.Add(time.Hour), Granularity: "Weekly"}},
		{"start after end", UsageOptions{SubscriptionID: "s", Start: start.Add(time.Hour), End: start, Granularity: GranularityHourly}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.UsageAggregates(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestUsageAggregatesSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"ExpiredAuthenticationToken"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "Bearer stale")
	_, err := client.UsageAggregates(context.Background(), UsageOptions{
		SubscriptionID: "sub-1",
		Start:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Granularity:    GranularityHourly,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
