package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/config"
	"task_backend/internal/app/di"
	"task_backend/internal/app/router"
	authentity "task_backend/internal/feature/auth/domain/entity"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/db"
	infrahttp "task_backend/internal/platform/http"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/password"
	infraredis "task_backend/internal/platform/redis"
)

// shutdownTimeout は処理中リクエストの完了を待つ上限です。
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	// db
	gdb, err := db.Open(cfg.DB, cfg.DBConnectTimeout, cfg.RunMigrations, &authentity.User{}, &taskentity.Task{})
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		if !errors.Is(err, infraredis.ErrNotConfigured) {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Platform
	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	slog.Info("password hasher ready", "bcrypt_cost", hasher.Cost())
	gen, err := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}
	ver, err := jwtmw.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return err
	}

	// Repository
	userRepo := di.NewUserRepository(rdb, gdb, cfg.StoreTimeout, cfg.UserCacheTTL)
	taskRepo := di.NewTaskRepository(gdb, cfg.StoreTimeout)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, gen)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Auth:         authhandler.NewAuthHandler(authUC),
		Tasks:        taskhandler.NewTaskHandler(taskUC),
		Verifier:     ver,
		LoginLimiter: di.NewLoginLimiter(cfg.LoginRateLimit),
		CORSOrigins:  cfg.CORSAllowedOrigins,
		Logger:       slog.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := infrahttp.NewServer(cfg.Addr(), r)
	return infrahttp.ListenAndServe(ctx, srv, shutdownTimeout)
}
