package amazon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ecomtools/sellerbridge/internal/logging"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

// ErrNoAccessToken is returned when a request is attempted without a stored
// access token. Callers are expected to have gone through the token manager
// first; the dispatcher never refreshes on its own.
var ErrNoAccessToken = errors.New("no valid access token")

// requestTimeout bounds every Selling Partner API call.
const requestTimeout = 30 * time.Second

// Client dispatches authenticated REST calls to the region-specific
// Selling Partner API host. Idempotent reads get a single retry on 5xx.
type Client struct {
	http    *resty.Client
	logger  *slog.Logger
	baseURL string // overrides region resolution when set (tests)
}

// NewClient creates a dispatcher with an explicit timeout and retry policy.
func NewClient() *Client {
	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetRetryCount(1).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return false
			}
			return r.Request.Method == http.MethodGet && r.StatusCode() >= 500
		})

	return &Client{
		http:   httpClient,
		logger: slog.Default(),
	}
}

// SetLogger sets a custom logger.
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetBaseURL overrides region endpoint resolution, pointing every request
// at the given host. Used by tests; pass "" to restore region resolution.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

func (c *Client) endpointFor(bundle *tokens.Bundle) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return ParseRegion(bundle.Region).Endpoint()
}

// Request issues one authenticated call and returns the raw JSON body.
// The access token is attached both as a bearer credential and as the
// provider-specific x-amz-access-token header.
func (c *Client) Request(ctx context.Context, bundle *tokens.Bundle, method, path string, query *Query, body interface{}) ([]byte, error) {
	if bundle == nil || bundle.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(bundle.AccessToken).
		SetHeader("x-amz-access-token", bundle.AccessToken).
		SetHeader("Content-Type", "application/json")
	if query != nil {
		req.SetQueryParamsFromValues(query.Values())
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, c.endpointFor(bundle)+path)
	if err != nil {
		return nil, fmt.Errorf("amazon api request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("amazon api error",
			logging.Operation(method+" "+path),
			logging.Status(resp.Status()))
		return nil, fmt.Errorf("amazon api error: %s", resp.Status())
	}

	return resp.Body(), nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, bundle *tokens.Bundle, path string, query *Query) ([]byte, error) {
	return c.Request(ctx, bundle, http.MethodGet, path, query, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, bundle *tokens.Bundle, path string, body interface{}) ([]byte, error) {
	return c.Request(ctx, bundle, http.MethodPost, path, nil, body)
}

// ListOrders queries the Orders API.
func (c *Client) ListOrders(ctx context.Context, bundle *tokens.Bundle, query *Query) ([]byte, error) {
	return c.Get(ctx, bundle, "/orders/v0/orders", query)
}

// GetOrder retrieves a single order.
func (c *Client) GetOrder(ctx context.Context, bundle *tokens.Bundle, orderID string) ([]byte, error) {
	return c.Get(ctx, bundle, "/orders/v0/orders/"+url.PathEscape(orderID), nil)
}

// GetOrderItems retrieves the line items of an order.
func (c *Client) GetOrderItems(ctx context.Context, bundle *tokens.Bundle, orderID string) ([]byte, error) {
	return c.Get(ctx, bundle, "/orders/v0/orders/"+url.PathEscape(orderID)+"/orderItems", nil)
}

// InventorySummaries queries FBA inventory summaries.
func (c *Client) InventorySummaries(ctx context.Context, bundle *tokens.Bundle, query *Query) ([]byte, error) {
	return c.Get(ctx, bundle, "/fba/inventory/v1/summaries", query)
}

// ReportSpec describes a report creation request.
type ReportSpec struct {
	ReportType     string   `json:"reportType"`
	MarketplaceIDs []string `json:"marketplaceIds"`
	DataStartTime  string   `json:"dataStartTime,omitempty"`
	DataEndTime    string   `json:"dataEndTime,omitempty"`
}

// CreateReport requests generation of a new report.
func (c *Client) CreateReport(ctx context.Context, bundle *tokens.Bundle, spec ReportSpec) ([]byte, error) {
	return c.Post(ctx, bundle, "/reports/2021-06-30/reports", spec)
}

// GetReport retrieves report processing status.
func (c *Client) GetReport(ctx context.Context, bundle *tokens.Bundle, reportID string) ([]byte, error) {
	return c.Get(ctx, bundle, "/reports/2021-06-30/reports/"+url.PathEscape(reportID), nil)
}

// GetReportDocument retrieves the download location of a finished report.
func (c *Client) GetReportDocument(ctx context.Context, bundle *tokens.Bundle, documentID string) ([]byte, error) {
	return c.Get(ctx, bundle, "/reports/2021-06-30/documents/"+url.PathEscape(documentID), nil)
}

// FinancialEvents queries the Finances API.
func (c *Client) FinancialEvents(ctx context.Context, bundle *tokens.Bundle, query *Query) ([]byte, error) {
	return c.Get(ctx, bundle, "/finances/v0/financialEvents", query)
}

// ListShipments queries FBA inbound shipments.
func (c *Client) ListShipments(ctx context.Context, bundle *tokens.Bundle, query *Query) ([]byte, error) {
	return c.Get(ctx, bundle, "/fba/inbound/v0/shipments", query)
}

// ShipmentItems retrieves the items of one inbound shipment.
func (c *Client) ShipmentItems(ctx context.Context, bundle *tokens.Bundle, shipmentID string) ([]byte, error) {
	return c.Get(ctx, bundle, "/fba/inbound/v0/shipments/"+url.PathEscape(shipmentID)+"/items", nil)
}

// MarketplaceParticipations retrieves the seller's marketplace registrations.
func (c *Client) MarketplaceParticipations(ctx context.Context, bundle *tokens.Bundle) ([]byte, error) {
	return c.Get(ctx, bundle, "/sellers/v1/marketplaceParticipations", nil)
}
