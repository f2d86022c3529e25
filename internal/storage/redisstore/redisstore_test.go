package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/storage"
	"todo/internal/storage/redisstore"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestKey(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	assert.Equal(t, "todo:todo-app-tasks", redisstore.New(client).Key("todo-app-tasks"))
	assert.Equal(t, "app1/todo-app-tasks", redisstore.New(client, redisstore.WithPrefix("app1/")).Key("todo-app-tasks"))
}

func TestErrorsAreClassified(t *testing.T) {
	st := redisstore.New(unreachableClient())
	defer st.Close()
	ctx := context.Background()

	_, _, err := st.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrRead)

	assert.ErrorIs(t, st.Set(ctx, "k", "v"), storage.ErrWrite)
	assert.ErrorIs(t, st.Remove(ctx, "k"), storage.ErrRemove)
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := redisstore.Open(ctx, redisstore.Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

// TestIntegration runs against a real server when TODO_TEST_REDIS_ADDR is set.
func TestIntegration(t *testing.T) {
	addr := os.Getenv("TODO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TODO_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	st, err := redisstore.Open(ctx, redisstore.Config{
		Addr:   addr,
		Prefix: "todo-test:" + uuid.NewString() + ":",
	})
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "tasks", "[]"))
	value, ok, err := st.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, st.Remove(ctx, "tasks"))
	_, ok, err = st.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)
}
