package amazon_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/config"
	"github.com/ecomtools/sellerbridge/internal/server"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

func testServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), &config.Config{
		ClientID:     "amzn1.application-oa2-client.test",
		ClientSecret: "secret",
		AppID:        "amzn1.sp.solution.test",
		RedirectURI:  "https://example.com/callback",
		TokenURL:     config.DefaultTokenURL,
		ConsentBase:  config.DefaultConsentBase,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestUserIDFromArgs(t *testing.T) {
	_, err := userIDFromArgs(map[string]interface{}{})
	assert.Error(t, err)

	_, err = userIDFromArgs(map[string]interface{}{"user_id": "   "})
	assert.Error(t, err)

	_, err = userIDFromArgs(map[string]interface{}{"user_id": 42})
	assert.Error(t, err)

	userID, err := userIDFromArgs(map[string]interface{}{"user_id": " seller-7 "})
	require.NoError(t, err)
	assert.Equal(t, "seller-7", userID)
}

func TestListFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
	}{
		{name: "absent", input: nil, expected: nil},
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "ATVPDKIKX0DER", expected: []string{"ATVPDKIKX0DER"}},
		{name: "multiple with spaces", input: "A1, A2 ,A3", expected: []string{"A1", "A2", "A3"}},
		{name: "stray commas", input: ",A1,,A2,", expected: []string{"A1", "A2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{}
			if tt.input != nil {
				args["key"] = tt.input
			}
			assert.Equal(t, tt.expected, listFromArgs(args, "key"))
		})
	}
}

func TestIntFromArgs(t *testing.T) {
	// JSON numbers decode as float64.
	assert.Equal(t, 25, intFromArgs(map[string]interface{}{"n": float64(25)}, "n", 50))
	assert.Equal(t, 50, intFromArgs(map[string]interface{}{}, "n", 50))
	assert.Equal(t, 50, intFromArgs(map[string]interface{}{"n": "25"}, "n", 50))
}

func TestRegionFromArgs(t *testing.T) {
	assert.Equal(t, amazon.RegionEU, regionFromArgs(map[string]interface{}{"region": "eu"}))
	assert.Equal(t, amazon.RegionNA, regionFromArgs(map[string]interface{}{}))
	assert.Equal(t, amazon.RegionNA, regionFromArgs(map[string]interface{}{"region": "mars"}))
}

func TestFreshBundleGate(t *testing.T) {
	sc := testServerContext(t)
	ctx := context.Background()

	// Unknown user fails the gate with the re-authentication hint.
	bundle, errResult := freshBundle(ctx, sc, "stranger")
	assert.Nil(t, bundle)
	require.True(t, isErrorResult(errResult))

	// A stored, valid bundle passes without a refresh.
	require.NoError(t, sc.TokenManager().Save(ctx, "seller-1", &tokens.Bundle{
		AccessToken:  "Atza|access",
		RefreshToken: "Atzr|refresh",
		ExpiresOn:    time.Now().Add(time.Hour).UnixMilli(),
		Region:       "NA",
	}))

	bundle, errResult = freshBundle(ctx, sc, "seller-1")
	assert.Nil(t, errResult)
	require.NotNil(t, bundle)
	assert.Equal(t, "Atza|access", bundle.AccessToken)
}

func TestRegisterAmazonTools(t *testing.T) {
	sc := testServerContext(t)
	s := mcpserver.NewMCPServer("sellerbridge-test", "0.0.1")

	assert.NoError(t, RegisterAmazonTools(s, sc))
}
