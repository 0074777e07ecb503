package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
)

// defaultOrderPageSize caps order listings unless the caller asks otherwise.
const defaultOrderPageSize = 50

// registerOrderTools registers the Orders API tools.
func registerOrderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listOrdersTool := mcp.NewTool("amazon_list_orders",
		mcp.WithDescription("List orders of the connected Amazon Seller account, filtered by marketplace, creation time and status."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("marketplace_ids",
			mcp.Required(),
			mcp.Description("Comma-separated marketplace ids, e.g. ATVPDKIKX0DER"),
		),
		mcp.WithString("created_after",
			mcp.Description("Only orders created after this ISO 8601 timestamp"),
		),
		mcp.WithString("created_before",
			mcp.Description("Only orders created before this ISO 8601 timestamp"),
		),
		mcp.WithString("order_statuses",
			mcp.Description("Comma-separated order statuses, e.g. Unshipped,Shipped"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of orders per page (default: 50)"),
		),
	)

	s.AddTool(listOrdersTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		marketplaceIDs := listFromArgs(args, "marketplace_ids")
		if len(marketplaceIDs) == 0 {
			return mcp.NewToolResultError("marketplace_ids is required"), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_list_orders", true)
			return errResult, nil
		}

		query := amazon.NewQuery().
			SetList(amazon.ParamMarketplaceIDs, marketplaceIDs).
			SetInt(amazon.ParamMaxResultsPerPage, intFromArgs(args, "max_results", defaultOrderPageSize))
		if after := stringFromArgs(args, "created_after"); after != "" {
			query.Set(amazon.ParamCreatedAfter, after)
		}
		if before := stringFromArgs(args, "created_before"); before != "" {
			query.Set(amazon.ParamCreatedBefore, before)
		}
		if statuses := listFromArgs(args, "order_statuses"); len(statuses) > 0 {
			query.SetList(amazon.ParamOrderStatuses, statuses)
		}

		body, err := sc.Client().ListOrders(ctx, bundle, query)
		if err != nil {
			observe(sc, "amazon_list_orders", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list orders: %v", err)), nil
		}

		observe(sc, "amazon_list_orders", false)
		return mcp.NewToolResultText(amazon.FormatOrders(body)), nil
	})

	getOrderTool := mcp.NewTool("amazon_get_order",
		mcp.WithDescription("Get details of a single order by its Amazon order id."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("order_id",
			mcp.Required(),
			mcp.Description("The Amazon order id, e.g. 902-3159896-1390916"),
		),
	)

	s.AddTool(getOrderTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		orderID, err := requiredStringFromArgs(args, "order_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_order", true)
			return errResult, nil
		}

		body, err := sc.Client().GetOrder(ctx, bundle, orderID)
		if err != nil {
			observe(sc, "amazon_get_order", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get order: %v", err)), nil
		}

		observe(sc, "amazon_get_order", false)
		return mcp.NewToolResultText(amazon.FormatOrder(body)), nil
	})

	getOrderItemsTool := mcp.NewTool("amazon_get_order_items",
		mcp.WithDescription("List the line items of a single order."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("order_id",
			mcp.Required(),
			mcp.Description("The Amazon order id whose items to list"),
		),
	)

	s.AddTool(getOrderItemsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		orderID, err := requiredStringFromArgs(args, "order_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_order_items", true)
			return errResult, nil
		}

		body, err := sc.Client().GetOrderItems(ctx, bundle, orderID)
		if err != nil {
			observe(sc, "amazon_get_order_items", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get order items: %v", err)), nil
		}

		observe(sc, "amazon_get_order_items", false)
		return mcp.NewToolResultText(amazon.FormatOrderItems(body)), nil
	})

	return nil
}
