package ram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, ok, err := store.GetNotificationToken(ctx, "alice@social.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetNotificationToken(ctx, "alice@social.com", "token-1"))

	token, ok, err := store.GetNotificationToken(ctx, "alice@social.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
}

func TestTokenMovesBetweenUsers(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.SetNotificationToken(ctx, "alice@social.com", "token-1"))
	require.NoError(t, store.SetNotificationToken(ctx, "bob@social.com", "token-1"))

	// the device now belongs to bob, alice has no token left
	_, ok, err := store.GetNotificationToken(ctx, "alice@social.com")
	require.NoError(t, err)
	assert.False(t, ok)

	token, ok, err := store.GetNotificationToken(ctx, "bob@social.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
}

func TestTokenReplacedForSameUser(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.SetNotificationToken(ctx, "alice@social.com", "token-1"))
	require.NoError(t, store.SetNotificationToken(ctx, "alice@social.com", "token-2"))

	token, ok, err := store.GetNotificationToken(ctx, "alice@social.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-2", token)

	// the old token no longer resolves to anyone
	require.NoError(t, store.SetNotificationToken(ctx, "bob@social.com", "token-1"))
	token, ok, err = store.GetNotificationToken(ctx, "bob@social.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-1", token)
}
