package tokens

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleExpiredAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresOn int64
		expired   bool
	}{
		{name: "expiry in future", expiresOn: now.Add(10 * time.Minute).UnixMilli(), expired: false},
		{name: "expiry in past", expiresOn: now.Add(-time.Second).UnixMilli(), expired: true},
		{name: "expiry exactly now", expiresOn: now.UnixMilli(), expired: true},
		{name: "zero expiry", expiresOn: 0, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bundle{ExpiresOn: tt.expiresOn}
			assert.Equal(t, tt.expired, b.ExpiredAt(now))
		})
	}
}

func TestBundleAuthenticated(t *testing.T) {
	var nilBundle *Bundle
	assert.False(t, nilBundle.Authenticated())
	assert.False(t, (&Bundle{AccessToken: "access"}).Authenticated())
	assert.True(t, (&Bundle{RefreshToken: "refresh"}).Authenticated())
}

func TestBundleStorageFormat(t *testing.T) {
	b := &Bundle{
		AccessToken:  "Atza|access",
		RefreshToken: "Atzr|refresh",
		ExpiresOn:    1748779200000,
		Region:       "EU",
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)

	// Field names are part of the durable-store format and must not drift.
	assert.JSONEq(t, `{
		"accessToken": "Atza|access",
		"refreshToken": "Atzr|refresh",
		"expiresOn": 1748779200000,
		"region": "EU"
	}`, string(data))

	var decoded Bundle
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *b, decoded)
}
