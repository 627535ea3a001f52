package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/partyhub/party-ui-api/internal/domain/auth"
	"github.com/partyhub/party-ui-api/internal/testutil"
)

func testSession(token string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		TokenHash: domainauth.HashToken(token),
		Role:      domainauth.RoleHRAdmin,
		Principal: domainauth.AdminPrincipal{
			ID:    1,
			Name:  "Alice",
			Email: "alice@example.com",
			Role:  domainauth.RoleHRAdmin,
		},
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("token-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, sess.TokenHash, got.TokenHash)
	assert.Equal(t, domainauth.RoleHRAdmin, got.Role)

	admin, ok := got.Principal.(domainauth.AdminPrincipal)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", admin.Email)
}

func TestSessionStore_GetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), domainauth.HashToken("nope"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_SaveRejectsExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	sess := testSession("token-1", -time.Minute)
	err := store.Save(context.Background(), sess)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestSessionStore_SaveRejectsEmptyHash(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	sess := testSession("token-1", time.Hour)
	sess.TokenHash = ""
	require.Error(t, store.Save(context.Background(), sess))
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("token-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.TokenHash))

	_, err := store.Get(ctx, sess.TokenHash)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, sess.TokenHash))
}

func TestSessionStore_ExpiryDoubleCheck(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	// Write a payload whose embedded expiry has already passed even though
	// the Redis key is still alive.
	sess := testSession("token-1", time.Hour)
	sess.ExpiresAt = time.Now().Add(50 * time.Millisecond)
	require.NoError(t, store.Save(ctx, sess))

	time.Sleep(80 * time.Millisecond)

	_, err := store.Get(ctx, sess.TokenHash)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	a := NewSessionStoreWithPrefix(client, "a:")
	b := NewSessionStoreWithPrefix(client, "b:")

	sess := testSession("token-1", time.Hour)
	require.NoError(t, a.Save(ctx, sess))

	_, err := b.Get(ctx, sess.TokenHash)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = a.Get(ctx, sess.TokenHash)
	require.NoError(t, err)
}
