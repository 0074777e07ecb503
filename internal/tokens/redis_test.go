package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStoreRejectsMalformedURL(t *testing.T) {
	_, err := NewRedisStore("://nope")
	assert.Error(t, err)
}

func TestNewRedisStoreParsesURL(t *testing.T) {
	// Construction only parses the URL; no connection is made until the
	// store is used.
	store, err := NewRedisStore("redis://localhost:6379/0")
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())
}
