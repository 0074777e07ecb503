// Package amazon_tools registers the Amazon Seller MCP tools.
//
// The package provides two groups of tools:
//
//   - Connection tools (amazon_authenticate, amazon_exchange_code,
//     amazon_status, amazon_disconnect) that manage the OAuth lifecycle
//     and work without a stored token bundle.
//
//   - Seller data tools (orders, inventory, reports, financial events,
//     inbound shipments) that require an authenticated user. These are
//     gated on the token manager: the stored access token is refreshed
//     on demand before the API call, and a missing or unusable bundle
//     produces a "not authenticated" tool error result that tells the
//     caller to run amazon_authenticate.
//
// All handlers return tool results; operational failures never cross the
// MCP dispatch boundary as Go errors.
package amazon_tools
