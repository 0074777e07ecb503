package tokens

import (
	"context"
	"log/slog"

	"github.com/ecomtools/sellerbridge/internal/logging"
)

// FallbackStore decorates a durable primary store with an in-process
// fallback. Every write is mirrored into the fallback, and any primary
// failure is logged and masked by serving the operation from the fallback
// instead. Durability degradation therefore never surfaces as an error to
// callers; a miss still means "unauthenticated".
type FallbackStore struct {
	primary   Store
	fallback  Store
	logger    *slog.Logger
	onDegrade func(op string)
}

// NewFallbackStore wraps primary with fallback.
func NewFallbackStore(primary, fallback Store) *FallbackStore {
	return &FallbackStore{
		primary:  primary,
		fallback: fallback,
		logger:   slog.Default(),
	}
}

// SetLogger sets a custom logger for degradation events.
func (s *FallbackStore) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// SetDegradeHook installs a callback invoked with the operation name
// whenever the primary store fails. Used for metrics.
func (s *FallbackStore) SetDegradeHook(hook func(op string)) {
	s.onDegrade = hook
}

func (s *FallbackStore) degraded(op, userID string, err error) {
	s.logger.Warn("durable token store failed, using in-process fallback",
		logging.Operation(op), logging.UserHash(userID), logging.Err(err))
	if s.onDegrade != nil {
		s.onDegrade(op)
	}
}

// Get reads from the primary store, consulting the fallback on failure.
// A primary miss also consults the fallback so that a write masked by an
// earlier primary failure remains readable.
func (s *FallbackStore) Get(ctx context.Context, userID string) (*Bundle, error) {
	bundle, err := s.primary.Get(ctx, userID)
	if err != nil {
		s.degraded("get", userID, err)
		return s.fallback.Get(ctx, userID)
	}
	if bundle == nil {
		return s.fallback.Get(ctx, userID)
	}
	return bundle, nil
}

// Put writes to both stores; a primary failure is masked.
func (s *FallbackStore) Put(ctx context.Context, userID string, bundle *Bundle) error {
	if err := s.primary.Put(ctx, userID, bundle); err != nil {
		s.degraded("put", userID, err)
	}
	return s.fallback.Put(ctx, userID, bundle)
}

// Delete removes the bundle from both stores; a primary failure is masked.
func (s *FallbackStore) Delete(ctx context.Context, userID string) error {
	if err := s.primary.Delete(ctx, userID); err != nil {
		s.degraded("delete", userID, err)
	}
	return s.fallback.Delete(ctx, userID)
}
