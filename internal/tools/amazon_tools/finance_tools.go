package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
)

// defaultFinanceEventPageSize caps financial event listings unless the
// caller asks otherwise.
const defaultFinanceEventPageSize = 100

// registerFinanceTools registers the Finances API tools.
func registerFinanceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listFinancialEventsTool := mcp.NewTool("amazon_list_financial_events",
		mcp.WithDescription("List financial events (shipments, refunds) of the connected Amazon Seller account."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("posted_after",
			mcp.Description("Only events posted after this ISO 8601 timestamp"),
		),
		mcp.WithString("posted_before",
			mcp.Description("Only events posted before this ISO 8601 timestamp"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of events per page (default: 100)"),
		),
	)

	s.AddTool(listFinancialEventsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_list_financial_events", true)
			return errResult, nil
		}

		query := amazon.NewQuery().
			SetInt(amazon.ParamMaxResultsPerPage, intFromArgs(args, "max_results", defaultFinanceEventPageSize))
		if after := stringFromArgs(args, "posted_after"); after != "" {
			query.Set(amazon.ParamPostedAfter, after)
		}
		if before := stringFromArgs(args, "posted_before"); before != "" {
			query.Set(amazon.ParamPostedBefore, before)
		}

		body, err := sc.Client().FinancialEvents(ctx, bundle, query)
		if err != nil {
			observe(sc, "amazon_list_financial_events", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list financial events: %v", err)), nil
		}

		observe(sc, "amazon_list_financial_events", false)
		return mcp.NewToolResultText(amazon.FormatFinancialEvents(body)), nil
	})

	return nil
}
