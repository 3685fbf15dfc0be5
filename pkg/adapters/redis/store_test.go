package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	require.NoError(t, store.Save(context.Background(), &domain.RunRecord{ID: "r1", StartedAt: time.Now()}))
	assert.True(t, mr.Exists("test:r1"))
	assert.True(t, mr.Exists("test:index"))
}

func TestRedisStore_Order(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "b", StartedAt: base.Add(time.Second)}))
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "a", StartedAt: base.Add(2 * time.Second)}))
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "c", StartedAt: base}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestRedisStore_TTLPrunesIndex(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "old", StartedAt: time.Now()}))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "new", StartedAt: time.Now()}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids)

	_, err = store.Load(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
