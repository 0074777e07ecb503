package tokens

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore wraps a MemoryStore and fails operations on demand.
type flakyStore struct {
	inner      *MemoryStore
	failGet    bool
	failPut    bool
	failDelete bool
}

var errStoreDown = errors.New("connection refused")

func (s *flakyStore) Get(ctx context.Context, userID string) (*Bundle, error) {
	if s.failGet {
		return nil, errStoreDown
	}
	return s.inner.Get(ctx, userID)
}

func (s *flakyStore) Put(ctx context.Context, userID string, bundle *Bundle) error {
	if s.failPut {
		return errStoreDown
	}
	return s.inner.Put(ctx, userID, bundle)
}

func (s *flakyStore) Delete(ctx context.Context, userID string) error {
	if s.failDelete {
		return errStoreDown
	}
	return s.inner.Delete(ctx, userID)
}

func TestFallbackStoreHealthyPrimary(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{inner: NewMemoryStore()}
	store := NewFallbackStore(primary, NewMemoryStore())

	bundle := &Bundle{AccessToken: "access", RefreshToken: "refresh", Region: "NA"}
	require.NoError(t, store.Put(ctx, "u1", bundle))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *bundle, *got)

	require.NoError(t, store.Delete(ctx, "u1"))
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFallbackStoreMasksWriteFailure(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{inner: NewMemoryStore(), failPut: true}
	store := NewFallbackStore(primary, NewMemoryStore())

	var degraded []string
	store.SetDegradeHook(func(op string) { degraded = append(degraded, op) })

	bundle := &Bundle{RefreshToken: "refresh", Region: "EU"}
	require.NoError(t, store.Put(ctx, "u1", bundle), "durable failure must not surface")

	// The masked write must round-trip even though the durable store
	// never saw it and now reads cleanly.
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *bundle, *got)
	assert.Equal(t, []string{"put"}, degraded)
}

func TestFallbackStoreMasksReadFailure(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{inner: NewMemoryStore()}
	store := NewFallbackStore(primary, NewMemoryStore())

	bundle := &Bundle{RefreshToken: "refresh", Region: "FE"}
	require.NoError(t, store.Put(ctx, "u1", bundle))

	primary.failGet = true
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err, "durable read failure must not surface")
	require.NotNil(t, got)
	assert.Equal(t, *bundle, *got)
}

func TestFallbackStoreMasksDeleteFailure(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{inner: NewMemoryStore()}
	store := NewFallbackStore(primary, NewMemoryStore())

	require.NoError(t, store.Put(ctx, "u1", &Bundle{RefreshToken: "refresh"}))

	primary.failDelete = true
	require.NoError(t, store.Delete(ctx, "u1"))

	// The fallback copy is gone; the stale durable copy is only reachable
	// until its TTL runs out, which matches last-write-wins semantics.
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got, "durable copy survives a failed delete")
}

func TestFallbackStoreMissConsultsFallback(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{inner: NewMemoryStore()}
	fallback := NewMemoryStore()
	store := NewFallbackStore(primary, fallback)

	// Simulate an entry the durable store lost (e.g. TTL expiry) while the
	// in-process mirror still has it.
	bundle := &Bundle{RefreshToken: "refresh"}
	require.NoError(t, fallback.Put(ctx, "u1", bundle))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *bundle, *got)
}

func TestFallbackStoreMissIsNotAnError(t *testing.T) {
	store := NewFallbackStore(&flakyStore{inner: NewMemoryStore()}, NewMemoryStore())

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}
