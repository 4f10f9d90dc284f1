package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/session"
	"github.com/loccar/loccar-web/internal/infrastructure/store/seal"
)

func newStore(t *testing.T, opts Options) (session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFactory(client, opts, zerolog.Nop())("client-1"), mr
}

func TestTokenStore_SaveThenRead(t *testing.T) {
	store, mr := newStore(t, Options{Prefix: "test"})
	ctx := context.Background()

	user := &domain.User{ID: "7", Username: "ana", Email: "ana@x.io", Role: domain.RoleCliente}
	require.NoError(t, store.Save(ctx, "tok-1", user))

	assert.True(t, mr.Exists("test:client-1:token"))
	assert.True(t, mr.Exists("test:client-1:user"))

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, *user, *sess.User)
}

func TestTokenStore_ReadEmpty(t *testing.T) {
	store, _ := newStore(t, Options{})

	sess, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.User)
}

func TestTokenStore_CorruptUserReadsAsAbsent(t *testing.T) {
	store, mr := newStore(t, Options{Prefix: "p"})
	require.NoError(t, mr.Set("p:client-1:token", "tok"))
	require.NoError(t, mr.Set("p:client-1:user", "{not json"))

	sess, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Nil(t, sess.User)
}

func TestTokenStore_UserWithoutTokenIsDropped(t *testing.T) {
	store, mr := newStore(t, Options{Prefix: "p"})
	require.NoError(t, mr.Set("p:client-1:user", `{"email":"a@b.c","role":"Admin"}`))

	sess, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess.User)
}

func TestTokenStore_ClearIsIdempotentAndRemovesLegacyKeys(t *testing.T) {
	store, mr := newStore(t, Options{Prefix: "p"})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok", &domain.User{Email: "a@b.c"}))
	require.NoError(t, mr.Set("p:client-1:auth_token", "old"))
	require.NoError(t, mr.Set("p:client-1:currentUser", "old"))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	assert.Empty(t, mr.Keys())
}

func TestTokenStore_SaveAppliesTTL(t *testing.T) {
	store, mr := newStore(t, Options{Prefix: "p", TTL: time.Hour})
	require.NoError(t, store.Save(context.Background(), "tok", nil))

	assert.Equal(t, time.Hour, mr.TTL("p:client-1:token"))

	mr.FastForward(2 * time.Hour)
	sess, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestTokenStore_SealedValues(t *testing.T) {
	sealer, err := seal.New("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	store, mr := newStore(t, Options{Prefix: "p", Sealer: sealer})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "secret-token", &domain.User{Email: "a@b.c", Role: domain.RoleAdmin}))

	raw, err := mr.Get("p:client-1:token")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-token", raw)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, domain.RoleAdmin, sess.User.Role)
}

func TestTokenStore_ClientsAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	factory := NewFactory(client, Options{}, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, factory("a").Save(ctx, "tok-a", nil))

	sess, err := factory("b").Read(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	require.NoError(t, factory("b").Clear(ctx))
	sess, err = factory("a").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-a", sess.Token)
}
