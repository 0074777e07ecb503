package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
)

// registerShipmentTools registers the FBA inbound shipment tools.
func registerShipmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listShipmentsTool := mcp.NewTool("amazon_list_shipments",
		mcp.WithDescription("List inbound FBA shipments of the connected Amazon Seller account."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("shipment_statuses",
			mcp.Description("Comma-separated shipment statuses, e.g. WORKING,SHIPPED,RECEIVING"),
		),
		mcp.WithString("marketplace_id",
			mcp.Description("Marketplace id to scope the listing to"),
		),
	)

	s.AddTool(listShipmentsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_list_shipments", true)
			return errResult, nil
		}

		query := amazon.NewQuery().Set(amazon.ParamQueryType, "SHIPMENT")
		if statuses := listFromArgs(args, "shipment_statuses"); len(statuses) > 0 {
			query.SetList(amazon.ParamShipmentStatuses, statuses)
		}
		if marketplaceID := stringFromArgs(args, "marketplace_id"); marketplaceID != "" {
			query.Set(amazon.ParamMarketplaceID, marketplaceID)
		}

		body, err := sc.Client().ListShipments(ctx, bundle, query)
		if err != nil {
			observe(sc, "amazon_list_shipments", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list shipments: %v", err)), nil
		}

		observe(sc, "amazon_list_shipments", false)
		return mcp.NewToolResultText(amazon.FormatShipments(body)), nil
	})

	getShipmentItemsTool := mcp.NewTool("amazon_get_shipment_items",
		mcp.WithDescription("List the items of one inbound FBA shipment."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("shipment_id",
			mcp.Required(),
			mcp.Description("The inbound shipment id, e.g. FBA1234ABCD"),
		),
	)

	s.AddTool(getShipmentItemsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		shipmentID, err := requiredStringFromArgs(args, "shipment_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_shipment_items", true)
			return errResult, nil
		}

		body, err := sc.Client().ShipmentItems(ctx, bundle, shipmentID)
		if err != nil {
			observe(sc, "amazon_get_shipment_items", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get shipment items: %v", err)), nil
		}

		observe(sc, "amazon_get_shipment_items", false)
		return mcp.NewToolResultText(amazon.FormatShipmentItems(body)), nil
	})

	return nil
}
