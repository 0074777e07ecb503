package amazon

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomtools/sellerbridge/internal/tokens"
)

func testBundle() *tokens.Bundle {
	return &tokens.Bundle{
		AccessToken:  "Atza|access",
		RefreshToken: "Atzr|refresh",
		Region:       "NA",
	}
}

func TestRequestRequiresAccessToken(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	_, err := client.ListOrders(ctx, nil, NewQuery())
	assert.ErrorIs(t, err, ErrNoAccessToken)

	_, err = client.ListOrders(ctx, &tokens.Bundle{RefreshToken: "refresh"}, NewQuery())
	assert.ErrorIs(t, err, ErrNoAccessToken)
}

func TestRequestAttachesCredentials(t *testing.T) {
	var gotAuth, gotAmzToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAmzToken = r.Header.Get("x-amz-access-token")
		_, _ = w.Write([]byte(`{"payload":{}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.MarketplaceParticipations(context.Background(), testBundle())
	require.NoError(t, err)

	assert.Equal(t, "Bearer Atza|access", gotAuth)
	assert.Equal(t, "Atza|access", gotAmzToken)
}

func TestListOrdersQueryString(t *testing.T) {
	var gotQuery string
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"payload":{"Orders":[]}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	query := NewQuery().
		SetList(ParamMarketplaceIDs, []string{"A1"}).
		SetInt(ParamMaxResultsPerPage, 50)
	_, err := client.ListOrders(context.Background(), testBundle(), query)
	require.NoError(t, err)

	assert.Equal(t, "/orders/v0/orders", gotPath)
	assert.Equal(t, "MarketplaceIds=A1&MaxResultsPerPage=50", gotQuery)
}

func TestRequestSurfacesStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":[{"code":"Unauthorized"}]}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.GetOrder(context.Background(), testBundle(), "902-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestIdempotentReadsRetryOnceOn5xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "bad gateway", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"payload":{}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.MarketplaceParticipations(context.Background(), testBundle())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestWritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.CreateReport(context.Background(), testBundle(), ReportSpec{
		ReportType:     "GET_MERCHANT_LISTINGS_ALL_DATA",
		MarketplaceIDs: []string{"A1"},
	})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPathEscaping(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"payload":{}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.GetOrder(context.Background(), testBundle(), "order/../etc")
	require.NoError(t, err)
	assert.Equal(t, "/orders/v0/orders/order%2F..%2Fetc", gotPath)
}

func TestCreateReportBody(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"reportId":"ID42"}`))
	}))
	defer server.Close()

	client := NewClient()
	client.SetBaseURL(server.URL)

	_, err := client.CreateReport(context.Background(), testBundle(), ReportSpec{
		ReportType:     "GET_MERCHANT_LISTINGS_ALL_DATA",
		MarketplaceIDs: []string{"A1", "A2"},
		DataStartTime:  "2025-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"reportType": "GET_MERCHANT_LISTINGS_ALL_DATA",
		"marketplaceIds": ["A1", "A2"],
		"dataStartTime": "2025-01-01T00:00:00Z"
	}`, string(gotBody))
}
