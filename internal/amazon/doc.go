// Package amazon talks to the Amazon Selling Partner API and the Login
// with Amazon identity provider.
//
// Flow implements the OAuth2 authorization-code grant used to link a seller
// account: consent URL construction, authorization-code exchange and
// refresh-token exchange. Client dispatches authenticated REST calls to the
// region-specific SP-API host. Formatting helpers turn raw JSON responses
// into the display text returned by the MCP tools.
package amazon
