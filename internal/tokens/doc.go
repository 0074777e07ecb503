// Package tokens manages per-user OAuth token bundles for the Amazon
// Selling Partner API.
//
// A Bundle holds a user's access token, refresh token, expiry and region.
// Bundles are persisted through the Store interface, which has a durable
// Redis-backed implementation and an in-process implementation. The
// FallbackStore decorator masks durable-store failures by degrading to the
// in-process store, so durability loss never blocks a read or write.
//
// The Manager owns the token lifecycle: it lazily refreshes expired access
// tokens on demand, persists the merged bundle, and deletes bundles whose
// refresh token has become unusable. Refreshes for the same user are
// serialized with a per-user mutex so two concurrent requests cannot
// double-refresh.
package tokens
