package amazon_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ecomtools/sellerbridge/internal/amazon"
	"github.com/ecomtools/sellerbridge/internal/server"
)

// registerReportTools registers the Reports API tools covering the full
// report lifecycle: request, poll, download location.
func registerReportTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createReportTool := mcp.NewTool("amazon_create_report",
		mcp.WithDescription("Request generation of a seller report. Returns the report id to poll with amazon_get_report."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("report_type",
			mcp.Required(),
			mcp.Description("Report type, e.g. GET_MERCHANT_LISTINGS_ALL_DATA"),
		),
		mcp.WithString("marketplace_ids",
			mcp.Required(),
			mcp.Description("Comma-separated marketplace ids the report covers"),
		),
		mcp.WithString("start_time",
			mcp.Description("ISO 8601 start of the report data window"),
		),
		mcp.WithString("end_time",
			mcp.Description("ISO 8601 end of the report data window"),
		),
	)

	s.AddTool(createReportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reportType, err := requiredStringFromArgs(args, "report_type")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		marketplaceIDs := listFromArgs(args, "marketplace_ids")
		if len(marketplaceIDs) == 0 {
			return mcp.NewToolResultError("marketplace_ids is required"), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_create_report", true)
			return errResult, nil
		}

		body, err := sc.Client().CreateReport(ctx, bundle, amazon.ReportSpec{
			ReportType:     reportType,
			MarketplaceIDs: marketplaceIDs,
			DataStartTime:  stringFromArgs(args, "start_time"),
			DataEndTime:    stringFromArgs(args, "end_time"),
		})
		if err != nil {
			observe(sc, "amazon_create_report", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create report: %v", err)), nil
		}

		observe(sc, "amazon_create_report", false)
		return mcp.NewToolResultText(amazon.FormatReportCreated(body)), nil
	})

	getReportTool := mcp.NewTool("amazon_get_report",
		mcp.WithDescription("Check the processing status of a report requested with amazon_create_report."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("report_id",
			mcp.Required(),
			mcp.Description("The report id returned by amazon_create_report"),
		),
	)

	s.AddTool(getReportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reportID, err := requiredStringFromArgs(args, "report_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_report", true)
			return errResult, nil
		}

		body, err := sc.Client().GetReport(ctx, bundle, reportID)
		if err != nil {
			observe(sc, "amazon_get_report", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get report: %v", err)), nil
		}

		observe(sc, "amazon_get_report", false)
		return mcp.NewToolResultText(amazon.FormatReport(body)), nil
	})

	getReportDocumentTool := mcp.NewTool("amazon_get_report_document",
		mcp.WithDescription("Get the download location of a finished report document."),
		mcp.WithString("user_id",
			mcp.Required(),
			mcp.Description("Identifier of the connected user"),
		),
		mcp.WithString("report_document_id",
			mcp.Required(),
			mcp.Description("The report document id from a DONE report status"),
		),
	)

	s.AddTool(getReportDocumentTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(request)

		userID, err := userIDFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		documentID, err := requiredStringFromArgs(args, "report_document_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, errResult := freshBundle(ctx, sc, userID)
		if errResult != nil {
			observe(sc, "amazon_get_report_document", true)
			return errResult, nil
		}

		body, err := sc.Client().GetReportDocument(ctx, bundle, documentID)
		if err != nil {
			observe(sc, "amazon_get_report_document", true)
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get report document: %v", err)), nil
		}

		observe(sc, "amazon_get_report_document", false)
		return mcp.NewToolResultText(amazon.FormatReportDocument(body)), nil
	})

	return nil
}
