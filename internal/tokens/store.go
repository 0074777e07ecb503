package tokens

import (
	"context"
	"time"
)

// KeyPrefix scopes all durable-store keys written by this package.
const KeyPrefix = "amazon_tokens:"

// EntryTTL bounds how long a stored bundle may live regardless of token
// expiry, to keep stale state from accumulating.
const EntryTTL = 7 * 24 * time.Hour

// Store persists token bundles keyed by an opaque user identifier.
//
// A miss is not an error: Get returns (nil, nil) when no bundle is stored,
// which callers interpret as "unauthenticated".
type Store interface {
	// Get retrieves the bundle for a user, or nil when none is stored.
	Get(ctx context.Context, userID string) (*Bundle, error)

	// Put stores the bundle for a user, replacing any previous one.
	Put(ctx context.Context, userID string, bundle *Bundle) error

	// Delete removes the bundle for a user. Deleting a missing bundle
	// is not an error.
	Delete(ctx context.Context, userID string) error
}
