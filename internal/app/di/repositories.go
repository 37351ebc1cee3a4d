// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "task_backend/internal/feature/auth/adapters"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/cache"
	"task_backend/internal/shared/ratelimiter"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, the GORM store is wrapped with a read-through profile cache.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, storeTimeout, cacheTTL time.Duration) authusecase.UserRepository {
	store := authadapters.NewUserGorm(db, storeTimeout)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, cacheTTL, store, "users")
	}
	return store
}

// NewTaskRepository creates the owner-scoped task store.
func NewTaskRepository(db *gorm.DB, storeTimeout time.Duration) taskusecase.TaskRepository {
	return taskadapters.NewTaskGorm(db, storeTimeout)
}

// NewLoginLimiter creates the per-IP limiter for the auth routes.
// It returns nil when perMinute is 0 so that the rate-limit stage lets everything through.
func NewLoginLimiter(perMinute int) ratelimiter.RateLimiterInterface {
	rl := ratelimiter.NewRateLimiter(perMinute, time.Minute)
	if rl == nil {
		return nil
	}
	return rl
}
