package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomtools/sellerbridge/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ClientID:     "amzn1.application-oa2-client.test",
		ClientSecret: "secret",
		AppID:        "amzn1.sp.solution.test",
		RedirectURI:  "https://example.com/callback",
		TokenURL:     config.DefaultTokenURL,
		ConsentBase:  config.DefaultConsentBase,
	}
}

func TestNewServerContextMemoryOnly(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.NotNil(t, sc.Flow())
	assert.NotNil(t, sc.Client())
	assert.NotNil(t, sc.TokenManager())
	assert.Nil(t, sc.Metrics())
	assert.False(t, sc.IsShutdown())
}

func TestNewServerContextRejectsMalformedRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "://not-a-url"

	_, err := NewServerContext(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServerContextShutdownIsIdempotent(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig())
	require.NoError(t, err)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("shutdown did not cancel the server context")
	}
}

func TestSetMetricsWiresHooks(t *testing.T) {
	sc, err := NewServerContext(context.Background(), testConfig())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	m := NewMetrics()
	sc.SetMetrics(m)
	assert.Same(t, m, sc.Metrics())

	sc.SetMetrics(nil)
	assert.Nil(t, sc.Metrics())
}
