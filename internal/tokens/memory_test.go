package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "miss must return nil, nil")

	bundle := &Bundle{AccessToken: "access", RefreshToken: "refresh", ExpiresOn: 42, Region: "NA"}
	require.NoError(t, store.Put(ctx, "u1", bundle))

	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *bundle, *got)

	// The store owns its copy; mutating the returned bundle must not
	// affect stored state.
	got.AccessToken = "mutated"
	again, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "access", again.AccessToken)

	require.NoError(t, store.Delete(ctx, "u1"))
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDeleteMissing(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Delete(context.Background(), "nobody"))
}

func TestMemoryStoreEntryDeadline(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(clock)

	bundle := &Bundle{RefreshToken: "refresh", Region: "NA"}
	require.NoError(t, store.Put(ctx, "u1", bundle))

	clock.Advance(EntryTTL - time.Second)
	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got, "entry must survive until the deadline")

	clock.Advance(2 * time.Second)
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "entry must be pruned after 7 days")
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStorePutRefreshesDeadline(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(clock)

	require.NoError(t, store.Put(ctx, "u1", &Bundle{RefreshToken: "r1"}))
	clock.Advance(EntryTTL - time.Hour)
	require.NoError(t, store.Put(ctx, "u1", &Bundle{RefreshToken: "r2"}))
	clock.Advance(2 * time.Hour)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got, "rewrite must reset the deadline")
	assert.Equal(t, "r2", got.RefreshToken)
}
