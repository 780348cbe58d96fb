package kv

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisRepository_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) Repository {
		_, client := setupRedis(t)
		return NewRedisRepository(client)
	})
}

func TestRedisRepository_UsesPrefix(t *testing.T) {
	mr, client := setupRedis(t)
	r := NewRedisRepositoryWithPrefix(client, "kiosk-7:")
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"vivigo_token": []byte("a.b.c")}))

	got, err := mr.Get("kiosk-7:vivigo_token")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", got)
}

func TestRedisRepository_ClearLeavesForeignKeys(t *testing.T) {
	mr, client := setupRedis(t)
	r := NewRedisRepository(client)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, r.Set(ctx, "vivigo_user", []byte("{}")))
	require.NoError(t, r.Clear(ctx))

	assert.True(t, mr.Exists("other:key"))
	assert.False(t, mr.Exists(DefaultRedisPrefix+"vivigo_user"))
}

func TestRedisRepository_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := NewRedisRepository(client)

	_, err = r.Get(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get kv[k]")
	require.Error(t, r.SetMany(context.Background(), map[string][]byte{"k": {1}}))
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupRedis(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient(context.Background(), "")
	require.Error(t, err)

	_, err = NewRedisClient(context.Background(), "://bad")
	require.Error(t, err)
}
