package session

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

	"github.com/pageza/mealfinder/internal/page"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port())})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisStore(t *testing.T) {
	storeContract(t, NewRedisStore(setupRedis(t), time.Minute, 5*time.Second))
}

func TestRedisStoreKeysExpire(t *testing.T) {
	client := setupRedis(t)
	store := NewRedisStore(client, time.Minute, 5*time.Second)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	ttl, err := client.TTL(ctx, "mealfinder:lock:abc").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 5*time.Second)

	require.NoError(t, store.Save(ctx, "abc", &page.Page{SearchBox: "stew"}))
	ttl, err = client.TTL(ctx, "mealfinder:page:abc").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 5*time.Second)
}

func TestRedisStoreCorruptPage(t *testing.T) {
	client := setupRedis(t)
	store := NewRedisStore(client, time.Minute, time.Second)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "mealfinder:page:bad", "not json", time.Minute).Err())
	_, err := store.Load(ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
