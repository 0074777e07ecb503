package amazon

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"
)

// maxTitleWidth truncates long listing titles in table output.
const maxTitleWidth = 48

func newTable(buf *strings.Builder, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	return table
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

func money(value gjson.Result) string {
	if !value.Exists() {
		return "-"
	}
	return value.Get("Amount").String() + " " + value.Get("CurrencyCode").String()
}

// FormatOrders renders an Orders API list response as display text.
func FormatOrders(data []byte) string {
	orders := gjson.GetBytes(data, "payload.Orders")
	if !orders.Exists() || len(orders.Array()) == 0 {
		return "No orders found."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Found %d order(s):\n\n", len(orders.Array()))

	table := newTable(&buf, []string{"Order ID", "Status", "Purchase Date", "Channel", "Total"})
	orders.ForEach(func(_, order gjson.Result) bool {
		table.Append([]string{
			order.Get("AmazonOrderId").String(),
			order.Get("OrderStatus").String(),
			order.Get("PurchaseDate").String(),
			order.Get("FulfillmentChannel").String(),
			money(order.Get("OrderTotal")),
		})
		return true
	})
	table.Render()

	if next := gjson.GetBytes(data, "payload.NextToken"); next.Exists() {
		buf.WriteString("\nMore results available.")
	}
	return buf.String()
}

// FormatOrder renders a single order as display text.
func FormatOrder(data []byte) string {
	order := gjson.GetBytes(data, "payload")
	if !order.Exists() {
		return "Order not found."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Order %s\n", order.Get("AmazonOrderId").String())
	fmt.Fprintf(&buf, "  Status:         %s\n", order.Get("OrderStatus").String())
	fmt.Fprintf(&buf, "  Purchase date:  %s\n", order.Get("PurchaseDate").String())
	fmt.Fprintf(&buf, "  Last update:    %s\n", order.Get("LastUpdateDate").String())
	fmt.Fprintf(&buf, "  Marketplace:    %s\n", order.Get("MarketplaceId").String())
	fmt.Fprintf(&buf, "  Channel:        %s\n", order.Get("FulfillmentChannel").String())
	fmt.Fprintf(&buf, "  Total:          %s\n", money(order.Get("OrderTotal")))
	if items := order.Get("NumberOfItemsShipped"); items.Exists() {
		fmt.Fprintf(&buf, "  Items shipped:  %s\n", items.String())
	}
	if items := order.Get("NumberOfItemsUnshipped"); items.Exists() {
		fmt.Fprintf(&buf, "  Items unshipped: %s\n", items.String())
	}
	return buf.String()
}

// FormatOrderItems renders the line items of an order as display text.
func FormatOrderItems(data []byte) string {
	items := gjson.GetBytes(data, "payload.OrderItems")
	if !items.Exists() || len(items.Array()) == 0 {
		return "No items found for this order."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Order %s has %d item(s):\n\n",
		gjson.GetBytes(data, "payload.AmazonOrderId").String(), len(items.Array()))

	table := newTable(&buf, []string{"SKU", "ASIN", "Title", "Qty", "Price"})
	items.ForEach(func(_, item gjson.Result) bool {
		table.Append([]string{
			item.Get("SellerSKU").String(),
			item.Get("ASIN").String(),
			truncate(item.Get("Title").String(), maxTitleWidth),
			item.Get("QuantityOrdered").String(),
			money(item.Get("ItemPrice")),
		})
		return true
	})
	table.Render()
	return buf.String()
}

// FormatInventory renders FBA inventory summaries as display text.
func FormatInventory(data []byte) string {
	summaries := gjson.GetBytes(data, "payload.inventorySummaries")
	if !summaries.Exists() || len(summaries.Array()) == 0 {
		return "No inventory found."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Found %d inventory item(s):\n\n", len(summaries.Array()))

	table := newTable(&buf, []string{"SKU", "ASIN", "Condition", "Fulfillable", "Total"})
	summaries.ForEach(func(_, item gjson.Result) bool {
		table.Append([]string{
			item.Get("sellerSku").String(),
			item.Get("asin").String(),
			item.Get("condition").String(),
			item.Get("inventoryDetails.fulfillableQuantity").String(),
			item.Get("totalQuantity").String(),
		})
		return true
	})
	table.Render()
	return buf.String()
}

// FormatReportCreated renders a report creation response as display text.
func FormatReportCreated(data []byte) string {
	reportID := gjson.GetBytes(data, "reportId").String()
	if reportID == "" {
		return "Report request accepted but no report id was returned."
	}
	return fmt.Sprintf("Report requested.\n  Report ID: %s\nUse amazon_get_report to check processing status.", reportID)
}

// FormatReport renders report processing status as display text.
func FormatReport(data []byte) string {
	report := gjson.ParseBytes(data)
	if report.Get("reportId").String() == "" {
		return "Report not found."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Report %s\n", report.Get("reportId").String())
	fmt.Fprintf(&buf, "  Type:    %s\n", report.Get("reportType").String())
	fmt.Fprintf(&buf, "  Status:  %s\n", report.Get("processingStatus").String())
	fmt.Fprintf(&buf, "  Created: %s\n", report.Get("createdTime").String())
	if doc := report.Get("reportDocumentId"); doc.Exists() {
		fmt.Fprintf(&buf, "  Document ID: %s\n", doc.String())
	}
	return buf.String()
}

// FormatReportDocument renders a report document location as display text.
func FormatReportDocument(data []byte) string {
	doc := gjson.ParseBytes(data)
	downloadURL := doc.Get("url").String()
	if downloadURL == "" {
		return "Report document not available."
	}

	var buf strings.Builder
	buf.WriteString("Report document ready.\n")
	fmt.Fprintf(&buf, "  Download URL: %s\n", downloadURL)
	if algo := doc.Get("compressionAlgorithm"); algo.Exists() {
		fmt.Fprintf(&buf, "  Compression:  %s\n", algo.String())
	}
	buf.WriteString("The URL expires a few minutes after issuance.")
	return buf.String()
}

// FormatFinancialEvents renders a Finances API response as display text.
func FormatFinancialEvents(data []byte) string {
	shipments := gjson.GetBytes(data, "payload.FinancialEvents.ShipmentEventList")
	refunds := gjson.GetBytes(data, "payload.FinancialEvents.RefundEventList")

	if len(shipments.Array()) == 0 && len(refunds.Array()) == 0 {
		return "No financial events found."
	}

	var buf strings.Builder
	if events := shipments.Array(); len(events) > 0 {
		fmt.Fprintf(&buf, "%d shipment event(s):\n\n", len(events))
		table := newTable(&buf, []string{"Order ID", "Posted", "Marketplace"})
		for _, event := range events {
			table.Append([]string{
				event.Get("AmazonOrderId").String(),
				event.Get("PostedDate").String(),
				event.Get("MarketplaceName").String(),
			})
		}
		table.Render()
	}
	if events := refunds.Array(); len(events) > 0 {
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "%d refund event(s):\n\n", len(events))
		table := newTable(&buf, []string{"Order ID", "Posted", "Marketplace"})
		for _, event := range events {
			table.Append([]string{
				event.Get("AmazonOrderId").String(),
				event.Get("PostedDate").String(),
				event.Get("MarketplaceName").String(),
			})
		}
		table.Render()
	}
	return buf.String()
}

// FormatShipments renders FBA inbound shipments as display text.
func FormatShipments(data []byte) string {
	shipments := gjson.GetBytes(data, "payload.ShipmentData")
	if !shipments.Exists() || len(shipments.Array()) == 0 {
		return "No shipments found."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Found %d shipment(s):\n\n", len(shipments.Array()))

	table := newTable(&buf, []string{"Shipment ID", "Name", "Status", "Destination"})
	shipments.ForEach(func(_, shipment gjson.Result) bool {
		table.Append([]string{
			shipment.Get("ShipmentId").String(),
			truncate(shipment.Get("ShipmentName").String(), maxTitleWidth),
			shipment.Get("ShipmentStatus").String(),
			shipment.Get("DestinationFulfillmentCenterId").String(),
		})
		return true
	})
	table.Render()
	return buf.String()
}

// FormatShipmentItems renders the items of an inbound shipment.
func FormatShipmentItems(data []byte) string {
	items := gjson.GetBytes(data, "payload.ItemData")
	if !items.Exists() || len(items.Array()) == 0 {
		return "No items found for this shipment."
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Found %d shipment item(s):\n\n", len(items.Array()))

	table := newTable(&buf, []string{"SKU", "FNSKU", "Shipped", "Received"})
	items.ForEach(func(_, item gjson.Result) bool {
		table.Append([]string{
			item.Get("SellerSKU").String(),
			item.Get("FulfillmentNetworkSKU").String(),
			item.Get("QuantityShipped").String(),
			item.Get("QuantityReceived").String(),
		})
		return true
	})
	table.Render()
	return buf.String()
}

// FormatParticipations renders the seller's marketplace participations.
func FormatParticipations(data []byte) string {
	participations := gjson.GetBytes(data, "payload")
	if !participations.Exists() || len(participations.Array()) == 0 {
		return "Connected, but no marketplace participations were returned."
	}

	var buf strings.Builder
	buf.WriteString("Connected to Amazon Seller account.\n\n")

	table := newTable(&buf, []string{"Marketplace ID", "Country", "Name", "Participating"})
	participations.ForEach(func(_, p gjson.Result) bool {
		table.Append([]string{
			p.Get("marketplace.id").String(),
			p.Get("marketplace.countryCode").String(),
			p.Get("marketplace.name").String(),
			p.Get("participation.isParticipating").String(),
		})
		return true
	})
	table.Render()
	return buf.String()
}
