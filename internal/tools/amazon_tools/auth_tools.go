package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

// registerAuthTools registers the connection lifecycle tools. None of them
// go through the authentication gate.
func registerAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	authenticateTool := mcp.NewTool("amazon_authenticate",
		mcp.WithDescription("Start connecting an Amazon Seller account. Returns a Seller Central consent URL the user must open in a browser."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the user whose account is being connected"),
		),
		mcp.WithString("region",
			mcp.Description("Seller account region: NA, EU or FE (default: NA)"),
		),
	)

	s.AddTool(authenticateTool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		region := regionFromArgs(args)

		consentURL, err := sc.Flow().ConsentURL(userID, region)
		if err != nil {
			observe(sc, "amazon_authenticate", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to build consent URL: %v", err)), nil
		}

		observe(sc, "amazon_authenticate", false)
		return mcp.NewToolResultText(fmt.Sprintf(`To connect your Amazon Seller account (%s region):

1. Open this URL in your browser:
   %s

2. Sign in to Seller Central and authorize the application
3. Copy the authorization code (the "spapi_oauth_code" parameter of the redirect)
4. Provide the code via the amazon_exchange_code tool

You only need to do this once. Access tokens are refreshed automatically.`, region, consentURL)), nil
	})

	exchangeCodeTool := mcp.NewTool("amazon_exchange_code",
		mcp.WithDescription("Complete the connection by exchanging the authorization code from the consent redirect for tokens."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the user whose account is being connected"),
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The spapi_oauth_code authorization code from the consent redirect"),
		),
		mcp.WithString("region",
			mcp.Description("Seller account region: NA, EU or FE (default: NA)"),
		),
	)

	s.AddTool(exchangeCodeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		code, err := requiredStringFromArgs(args, "code")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		region := regionFromArgs(args)

		grant, err := sc.Flow().ExchangeCode(ctx, code)
		if err != nil {
			observe(sc, "amazon_exchange_code", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to exchange authorization code: %v", err)), nil
		}

		bundle := &tokens.Bundle{
			AccessToken:  grant.AccessToken,
			RefreshToken: grant.RefreshToken,
			ExpiresOn:    grant.ExpiresOn,
			Region:       string(region),
		}
		if err := sc.TokenManager().Save(ctx, userID, bundle); err != nil {
			observe(sc, "amazon_exchange_code", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to store credentials: %v", err)), nil
		}

		observe(sc, "amazon_exchange_code", false)
		return mcp.NewToolResultText(fmt.Sprintf("Amazon Seller account connected (%s region). You can now use the seller data tools.", region)), nil
	})

	statusTool := mcp.NewTool("amazon_status",
		mcp.WithDescription("Check whether a user's Amazon Seller account is connected and list its marketplace participations."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the user to check"),
		),
	)

	s.AddTool(statusTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if !sc.TokenManager().IsAuthenticated(ctx, userID) {
			observe(sc, "amazon_status", false)
			return mcp.NewToolResultText("Not connected. Use the amazon_authenticate tool to connect an Amazon Seller account."), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_status", true)
			return errResult, nil
		}

		body, err := sc.Client().MarketplaceParticipations(ctx, bundle)
		if err != nil {
			observe(sc, "amazon_status", true)
			return mcp.NewToolResultError(fmt.Sprintf("Connected, but listing marketplaces failed: %v", err)), nil
		}

		observe(sc, "amazon_status", false)
		return mcp.NewToolResultText(amazon.FormatParticipations(body)), nil
	})

	disconnectTool := mcp.NewTool("amazon_disconnect",
		mcp.WithDescription("Disconnect a user's Amazon Seller account by deleting the stored tokens."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the user to disconnect"),
		),
	)

	s.AddTool(disconnectTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := sc.TokenManager().Disconnect(ctx, userID); err != nil {
			observe(sc, "amazon_disconnect", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to disconnect: %v", err)), nil
		}

		observe(sc, "amazon_disconnect", false)
		return mcp.NewToolResultText("Amazon Seller account disconnected."), nil
	})

	return nil
}
