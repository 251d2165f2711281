package storage_test

import (
	"context"
	"fmt"
	"testing"

	"artisan/pkg/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

type identity struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	IsArtisan bool     `json:"isArtisan"`
	Address   *address `json:"address,omitempty"`
}

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db
}

// backends returns one raw backend per supported medium, each writable
// through the same Store contract.
func backends(t *testing.T) map[string]storage.Backend {
	t.Helper()

	_, client := setupTestRedis(t)
	gormBackend, err := storage.NewGORMBackend(setupTestDB(t))
	require.NoError(t, err)

	return map[string]storage.Backend{
		"memory": storage.NewMemoryBackend(),
		"redis":  storage.NewRedisBackendFromClient(client, "artisan:"),
		"gorm":   gormBackend,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := storage.New(backend)
			in := identity{ID: "user1", Email: "demo@artisanmarket.com", Address: &address{Street: "123 Main St", City: "Denver"}}

			s.Set(ctx, "k", in)

			var out identity
			assert.True(t, s.Get(ctx, "k", &out))
			assert.Equal(t, in, out)

			// Last write wins.
			in.Email = "other@example.com"
			s.Set(ctx, "k", in)
			out = identity{}
			assert.True(t, s.Get(ctx, "k", &out))
			assert.Equal(t, "other@example.com", out.Email)
		})
	}
}

func TestStore_AbsentAndCorrupt(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := storage.New(backend)

			var out identity
			res := s.GetResult(ctx, "missing", &out)
			assert.Equal(t, storage.Absent, res.Status)
			assert.NoError(t, res.Err)

			require.NoError(t, backend.Set(ctx, "broken", "{not json"))
			assert.False(t, s.Get(ctx, "broken", &out))
			res = s.GetResult(ctx, "broken", &out)
			assert.Equal(t, storage.Failed, res.Status)
			assert.Error(t, res.Err)

			require.NoError(t, backend.Set(ctx, "nulled", "null"))
			assert.False(t, s.Get(ctx, "nulled", &out))
		})
	}
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			root := storage.New(backend)
			a := root.WithPrefix("session:a:")
			b := root.WithPrefix("session:b:")

			a.Set(ctx, "artisan_user", identity{ID: "a"})
			a.Set(ctx, "other", 1)
			b.Set(ctx, "artisan_user", identity{ID: "b"})

			a.Remove(ctx, "other")
			var n int
			assert.False(t, a.Get(ctx, "other", &n))

			a.Clear(ctx)
			var out identity
			assert.False(t, a.Get(ctx, "artisan_user", &out))
			assert.True(t, b.Get(ctx, "artisan_user", &out))
			assert.Equal(t, "b", out.ID)

			root.Clear(ctx)
			assert.False(t, b.Get(ctx, "artisan_user", &out))

			// Removing an absent key is not an error.
			b.Remove(ctx, "never-set")
		})
	}
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	s := storage.Unavailable()

	assert.False(t, s.Available())
	s.Set(ctx, "k", identity{ID: "x"})

	var out identity
	res := s.GetResult(ctx, "k", &out)
	assert.Equal(t, storage.Absent, res.Status)
	assert.NoError(t, s.SetErr(ctx, "k", 1))
	s.Remove(ctx, "k")
	s.Clear(ctx)
}

func TestStore_RedisFailureReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	s := storage.New(storage.NewRedisBackendFromClient(client, "artisan:"))

	s.Set(ctx, "k", identity{ID: "x"})
	mr.Close()

	var out identity
	assert.False(t, s.Get(ctx, "k", &out))
	assert.Equal(t, storage.Failed, s.GetResult(ctx, "k", &out).Status)

	// Writes are absorbed.
	s.Set(ctx, "k", identity{ID: "y"})
	assert.Error(t, s.SetErr(ctx, "k", identity{ID: "y"}))
}

func TestStore_UnencodableValue(t *testing.T) {
	s := storage.New(storage.NewMemoryBackend())
	err := s.SetErr(context.Background(), "k", make(chan int))
	assert.Error(t, err)
}
