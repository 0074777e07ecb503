package amazon_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/logging"
	"github.com/ecomtools/sellerbridge/internal/server"
	"github.com/ecomtools/sellerbridge/internal/tokens"
)

// notAuthenticatedMessage tells the caller how to connect an account.
const notAuthenticatedMessage = "Not authenticated. Use the amazon_authenticate tool to connect this user's Amazon Seller account."

// requestArgs extracts the argument map from a tool request.
func requestArgs(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// userIDFromArgs extracts the required user_id argument.
func userIDFromArgs(args map[string]interface{}) (string, error) {
	userID, ok := args["user_id"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user_id is required")
	}
	return strings.TrimSpace(userID), nil
}

// stringFromArgs extracts an optional string argument, "" when absent.
func stringFromArgs(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}

// requiredStringFromArgs extracts a required string argument.
func requiredStringFromArgs(args map[string]interface{}, key string) (string, error) {
	value := stringFromArgs(args, key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// listFromArgs splits a comma-separated argument into its elements,
// dropping blanks. Returns nil when the argument is absent.
func listFromArgs(args map[string]interface{}, key string) []string {
	raw := stringFromArgs(args, key)
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

// intFromArgs extracts an integer argument, returning fallback when the
// argument is absent or not a number. JSON numbers arrive as float64.
func intFromArgs(args map[string]interface{}, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

// regionFromArgs extracts the optional region argument. Unknown or absent
// values resolve to the default region.
func regionFromArgs(args map[string]interface{}) amazon.Region {
	return amazon.ParseRegion(stringFromArgs(args, "region"))
}

// freshBundle is the authentication gate for seller data tools. It returns
// a bundle with a valid access token, refreshing it first when expired, or
// a tool error result that the handler returns as-is.
func freshBundle(ctx context.Context, sc *server.ServerContext, userID string) (*tokens.Bundle, *mcp.CallToolResult) {
	bundle, err := sc.TokenManager().EnsureFresh(ctx, userID)
	if err != nil {
		if errors.Is(err, tokens.ErrNotAuthenticated) {
			return nil, mcp.NewToolResultError(notAuthenticatedMessage)
		}
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to load credentials: %v", err))
	}
	return bundle, nil
}

// observe records a tool invocation when metrics are attached.
func observe(sc *server.ServerContext, tool string, failed bool) {
	m := sc.Metrics()
	if m == nil {
		return
	}
	status := logging.StatusSuccess
	if failed {
		status = logging.StatusError
	}
	m.ObserveToolCall(tool, status)
}

// RegisterAmazonTools registers all Amazon Seller tools with the MCP server.
func RegisterAmazonTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := registerAuthTools(s, sc); err != nil {
		return fmt.Errorf("failed to register auth tools: %w", err)
	}
	if err := registerOrderTools(s, sc); err != nil {
		return fmt.Errorf("failed to register order tools: %w", err)
	}
	if err := registerInventoryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register inventory tools: %w", err)
	}
	if err := registerReportTools(s, sc); err != nil {
		return fmt.Errorf("failed to register report tools: %w", err)
	}
	if err := registerFinanceTools(s, sc); err != nil {
		return fmt.Errorf("failed to register finance tools: %w", err)
	}
	if err := registerShipmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register shipment tools: %w", err)
	}
	return nil
}
