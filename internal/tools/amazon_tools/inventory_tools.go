package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
)

// registerInventoryTools registers the FBA inventory tools.
func registerInventoryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getInventoryTool := mcp.NewTool("amazon_get_inventory",
		mcp.WithDescription("List FBA inventory summaries for a marketplace, optionally filtered by SKU."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("marketplace_id",
			mcp.Required(),
			mcp.Description("The marketplace id to query, e.g. ATVPDKIKX0DER"),
		),
		mcp.WithString("skus",
			mcp.Description("Comma-separated seller SKUs to filter by"),
		),
	)

	s.AddTool(getInventoryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		marketplaceID, err := requiredStringFromArgs(args, "marketplace_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_inventory", true)
			return errResult, nil
		}

		query := amazon.NewQuery().
			Set(amazon.ParamGranularityType, "Marketplace").
			Set(amazon.ParamGranularityID, marketplaceID).
			Set(amazon.ParamInventoryMarkets, marketplaceID).
			SetBool(amazon.ParamInventoryDetails, true)
		if skus := listFromArgs(args, "skus"); len(skus) > 0 {
			query.SetList(amazon.ParamSellerSKUs, skus)
		}

		body, err := sc.Client().InventorySummaries(ctx, bundle, query)
		if err != nil {
			observe(sc, "amazon_get_inventory", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get inventory: %v", err)), nil
		}

		observe(sc, "amazon_get_inventory", false)
		return mcp.NewToolResultText(amazon.FormatInventory(body)), nil
	})

	return nil
}
