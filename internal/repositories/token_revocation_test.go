package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestTokenRevocationRepository(t *testing.T) {
	rdb := setupRedis(t)
	repo := NewTokenRevocationRepository(rdb)
	ctx := context.Background()

	t.Run("not revoked", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "token-a")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "token-b", time.Minute))

		revoked, err := repo.IsRevoked(ctx, "token-b")
		assert.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := rdb.TTL(ctx, revokedTokenKey("token-b")).Result()
		assert.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("already expired token is not stored", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "token-c", -time.Second))

		revoked, err := repo.IsRevoked(ctx, "token-c")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestRevokedTokenKey(t *testing.T) {
	k1 := revokedTokenKey("header.payload.signature")
	k2 := revokedTokenKey("header.payload.signature")
	k3 := revokedTokenKey("header.payload.signaturf")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotContains(t, k1, "payload")
	assert.Len(t, k1, len("revoked_token:")+64)
}
