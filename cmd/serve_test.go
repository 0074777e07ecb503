package cmd

import (
	"testing"
)

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()

	tests := []struct {
		flag     string
		expected string
	}{
		{flag: "transport", expected: "stdio"},
		{flag: "http-addr", expected: ":8080"},
		{flag: "debug", expected: "false"},
		{flag: "metrics-enabled", expected: "true"},
		{flag: "metrics-addr", expected: ":9090"},
	}

	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("serve command is missing the --%s flag", tt.flag)
			continue
		}
		if f.DefValue != tt.expected {
			t.Errorf("--%s default = %q, want %q", tt.flag, f.DefValue, tt.expected)
		}
	}
}

func TestRunServeRejectsUnknownTransport(t *testing.T) {
	err := runServe("carrier-pigeon", false, ":8080", MetricsConfig{})
	if err == nil {
		t.Fatal("expected an error for an unsupported transport")
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "amazon_authenticate", expected: "Connection Tools"},
		{name: "amazon_list_orders", expected: "Order Tools"},
		{name: "amazon_get_order_items", expected: "Order Tools"},
		{name: "amazon_get_inventory", expected: "Inventory Tools"},
		{name: "amazon_create_report", expected: "Report Tools"},
		{name: "amazon_get_report_document", expected: "Report Tools"},
		{name: "amazon_list_financial_events", expected: "Finance Tools"},
		{name: "amazon_get_shipment_items", expected: "Shipment Tools"},
		{name: "something_else", expected: "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.name); got != tt.expected {
			t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}
