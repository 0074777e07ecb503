package tokens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/ecomtools/sellerbridge/internal/logging"
)

// ErrNotAuthenticated is returned when a user has no usable token bundle.
var ErrNotAuthenticated = errors.New("not authenticated")

// Grant is the result of refreshing or exchanging credentials with the
// identity provider.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresOn    int64 // milliseconds since the Unix epoch
}

// Refresher exchanges a refresh token for a fresh access token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Grant, error)
}

// Manager owns the token lifecycle for all users: lazy refresh on demand,
// persistence of merged bundles, and deletion of bundles whose refresh
// token no longer works.
type Manager struct {
	store     Store
	refresher Refresher
	clock     clockwork.Clock
	logger    *slog.Logger
	onRefresh func(status string)

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewManager creates a manager using the real clock.
func NewManager(store Store, refresher Refresher) *Manager {
	return NewManagerWithClock(store, refresher, clockwork.NewRealClock())
}

// NewManagerWithClock creates a manager with a custom clock for tests.
func NewManagerWithClock(store Store, refresher Refresher, clock clockwork.Clock) *Manager {
	return &Manager{
		store:     store,
		refresher: refresher,
		clock:     clock,
		logger:    slog.Default(),
		userLocks: make(map[string]*sync.Mutex),
	}
}

// SetLogger sets a custom logger.
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// SetRefreshHook installs a callback invoked with "success" or "error"
// after every refresh attempt. Used for metrics.
func (m *Manager) SetRefreshHook(hook func(status string)) {
	m.onRefresh = hook
}

// userLock returns the mutex serializing refresh-then-store for one user.
func (m *Manager) userLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.userLocks[userID] = lock
	}
	return lock
}

// Bundle returns the stored bundle for a user, or nil when none exists.
// It never triggers a refresh.
func (m *Manager) Bundle(ctx context.Context, userID string) (*Bundle, error) {
	return m.store.Get(ctx, userID)
}

// Save persists a bundle for a user.
func (m *Manager) Save(ctx context.Context, userID string, bundle *Bundle) error {
	return m.store.Put(ctx, userID, bundle)
}

// Disconnect removes the stored bundle for a user, forcing a new consent
// flow before the next API call.
func (m *Manager) Disconnect(ctx context.Context, userID string) error {
	return m.store.Delete(ctx, userID)
}

// IsAuthenticated reports whether the user has a usable bundle, refreshing
// the access token first when it has expired. No network call is made while
// the access token is still valid.
func (m *Manager) IsAuthenticated(ctx context.Context, userID string) bool {
	bundle, err := m.store.Get(ctx, userID)
	if err != nil || !bundle.Authenticated() {
		return false
	}
	if !bundle.ExpiredAt(m.clock.Now()) {
		return true
	}

	_, err = m.EnsureFresh(ctx, userID)
	return err == nil
}

// EnsureFresh returns a bundle whose access token is valid, refreshing and
// persisting it when expired. When refresh fails the bundle is deleted and
// ErrNotAuthenticated is returned, forcing re-authentication.
func (m *Manager) EnsureFresh(ctx context.Context, userID string) (*Bundle, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	bundle, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading token bundle: %w", err)
	}
	if !bundle.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if !bundle.ExpiredAt(m.clock.Now()) {
		return bundle, nil
	}

	grant, err := m.refresher.Refresh(ctx, bundle.RefreshToken)
	if err != nil {
		m.logger.Warn("token refresh failed, deleting bundle",
			logging.UserHash(userID), logging.Err(err))
		if m.onRefresh != nil {
			m.onRefresh(logging.StatusError)
		}
		if delErr := m.store.Delete(ctx, userID); delErr != nil {
			m.logger.Error("failed to delete stale bundle",
				logging.UserHash(userID), logging.Err(delErr))
		}
		return nil, fmt.Errorf("%w: token refresh failed: %v", ErrNotAuthenticated, err)
	}

	// Only the access token and expiry change on refresh; the refresh
	// token and region of the original grant are preserved.
	merged := &Bundle{
		AccessToken:  grant.AccessToken,
		RefreshToken: bundle.RefreshToken,
		ExpiresOn:    grant.ExpiresOn,
		Region:       bundle.Region,
	}
	if err := m.store.Put(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("persisting refreshed bundle: %w", err)
	}

	m.logger.Debug("access token refreshed",
		logging.UserHash(userID), logging.Region(merged.Region))
	if m.onRefresh != nil {
		m.onRefresh(logging.StatusSuccess)
	}
	return merged, nil
}
