package di

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task_backend/internal/platform/cache"
	"task_backend/internal/shared/ratelimiter"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestNewUserRepository(t *testing.T) {
	t.Parallel()

	plain := NewUserRepository(nil, openDB(t), time.Second, time.Minute)
	_, isCached := plain.(*cache.CachingUserRepository)
	assert.False(t, isCached, "without redis the store must not be wrapped")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cached := NewUserRepository(rdb, openDB(t), time.Second, time.Minute)
	_, isCached = cached.(*cache.CachingUserRepository)
	assert.True(t, isCached)
}

func TestNewTaskRepository(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewTaskRepository(openDB(t), time.Second))
}

func TestNewLoginLimiter(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewLoginLimiter(0))

	l := NewLoginLimiter(2)
	require.NotNil(t, l)
	_, ok := l.(*ratelimiter.RateLimiter)
	assert.True(t, ok)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
}
