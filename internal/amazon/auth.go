package amazon

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"

	"github.com/ecomtools/sellerbridge/internal/logging"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

// ConsentScope is the fixed scope requested in every consent URL.
const ConsentScope = "sellingpartnerapi::migration"

// lwaTimeout bounds every call to the identity provider.
const lwaTimeout = 30 * time.Second

// FlowConfig holds the statically configured OAuth application settings.
type FlowConfig struct {
	ClientID     string
	ClientSecret string
	AppID        string
	RedirectURI  string
	TokenURL     string
	ConsentBase  string
}

// Flow builds consent URLs and exchanges authorization codes and refresh
// tokens with the Login with Amazon token endpoint. It implements
// tokens.Refresher.
type Flow struct {
	cfg    FlowConfig
	http   *resty.Client
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewFlow creates an auth flow using the real clock.
func NewFlow(cfg FlowConfig) *Flow {
	return NewFlowWithClock(cfg, clockwork.NewRealClock())
}

// NewFlowWithClock creates an auth flow with a custom clock for tests.
func NewFlowWithClock(cfg FlowConfig, clock clockwork.Clock) *Flow {
	return &Flow{
		cfg:    cfg,
		http:   resty.New().SetTimeout(lwaTimeout),
		clock:  clock,
		logger: slog.Default(),
	}
}

// SetLogger sets a custom logger.
func (f *Flow) SetLogger(logger *slog.Logger) {
	f.logger = logger
}

// StateParam encodes the user id and region into the OAuth state parameter
// so the redirect handler can recover them.
func StateParam(userID string, region Region) string {
	return userID + "_" + string(region)
}

// SplitState recovers the user id and region from a state parameter.
// Region tags never contain an underscore, so splitting at the last
// underscore keeps user ids with underscores intact.
func SplitState(state string) (string, Region, error) {
	idx := strings.LastIndex(state, "_")
	if idx <= 0 || idx == len(state)-1 {
		return "", "", fmt.Errorf("malformed state parameter: %q", state)
	}
	return state[:idx], ParseRegion(state[idx+1:]), nil
}

// ConsentURL builds the Seller Central consent URL for a user. It makes no
// network call and fails only when required configuration is absent.
func (f *Flow) ConsentURL(userID string, region Region) (string, error) {
	if f.cfg.AppID == "" {
		return "", fmt.Errorf("AMAZON_APP_ID (or AMAZON_CLIENT_ID) is not configured")
	}
	if f.cfg.RedirectURI == "" {
		return "", fmt.Errorf("AMAZON_REDIRECT_URI is not configured")
	}

	base, err := url.Parse(f.cfg.ConsentBase)
	if err != nil {
		return "", fmt.Errorf("invalid consent endpoint: %w", err)
	}

	query := base.Query()
	query.Set("application_id", f.cfg.AppID)
	query.Set("redirect_uri", f.cfg.RedirectURI)
	query.Set("scope", ConsentScope)
	query.Set("state", StateParam(userID, region))
	base.RawQuery = query.Encode()

	return base.String(), nil
}

// tokenResponse is the identity provider's JSON reply for both grant types.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ExchangeCode exchanges an authorization code for a token grant.
func (f *Flow) ExchangeCode(ctx context.Context, code string) (*tokens.Grant, error) {
	return f.tokenRequest(ctx, map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"redirect_uri":  f.cfg.RedirectURI,
		"client_id":     f.cfg.ClientID,
		"client_secret": f.cfg.ClientSecret,
	})
}

// Refresh exchanges a refresh token for a new access token.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*tokens.Grant, error) {
	return f.tokenRequest(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
		"client_id":     f.cfg.ClientID,
		"client_secret": f.cfg.ClientSecret,
	})
}

func (f *Flow) tokenRequest(ctx context.Context, form map[string]string) (*tokens.Grant, error) {
	if f.cfg.ClientID == "" || f.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("AMAZON_CLIENT_ID and AMAZON_CLIENT_SECRET are not configured")
	}

	var body tokenResponse
	resp, err := f.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&body).
		Post(f.cfg.TokenURL)
	if err != nil {
		return nil, fmt.Errorf("token endpoint request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("token endpoint returned %s", resp.Status())
	}

	f.logger.Debug("token grant received",
		logging.Operation(form["grant_type"]),
		slog.String("access_token", logging.SanitizeToken(body.AccessToken)),
		slog.Int64("expires_in", body.ExpiresIn))

	return &tokens.Grant{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		ExpiresOn:    f.clock.Now().UnixMilli() + body.ExpiresIn*1000,
	}, nil
}
