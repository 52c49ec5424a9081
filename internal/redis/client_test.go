package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/miniature-battle/internal/redis"
)

func TestOpenSingleInstance(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.Open([]string{mr.Addr()}, "", &redis.Options{DB: 2, MaxRetries: 1})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "battle_history:b1", "{}", 0).Err())

	value, err := mr.DB(2).Get("battle_history:b1")
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
	assert.False(t, mr.Exists("battle_history:b1"))
}

func TestOpenRequiresEndpoint(t *testing.T) {
	_, err := redis.Open(nil, "", nil)
	assert.Error(t, err)

	_, err = redis.NewClient("", nil)
	assert.Error(t, err)

	_, err = redis.NewFailoverClient("mymaster", nil, nil)
	assert.Error(t, err)
}

func TestOpenTopologies(t *testing.T) {
	cluster, err := redis.Open([]string{"localhost:7000", "localhost:7001"}, "", nil)
	require.NoError(t, err)
	assert.NotNil(t, cluster)
	_ = cluster.Close()

	failover, err := redis.Open([]string{"localhost:26379"}, "mymaster", &redis.Options{UseTLS: true})
	require.NoError(t, err)
	assert.NotNil(t, failover)
	_ = failover.Close()
}
