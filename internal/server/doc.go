// Package server holds the shared runtime context for the MCP server.
//
// ServerContext wires the configuration, token store, auth flow and API
// dispatcher together and owns their lifecycle. HealthChecker provides
// liveness and readiness endpoints, and Metrics exposes Prometheus
// counters on a dedicated metrics server.
package server
