// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"task_backend/internal/platform/db"
	"task_backend/internal/platform/redis"
)

// Config はサーバー全体の設定です。
type Config struct {
	Port string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	DB               db.Config
	DBConnectTimeout time.Duration
	RunMigrations    bool
	StoreTimeout     time.Duration

	Redis        redis.Config
	UserCacheTTL time.Duration

	CORSAllowedOrigins []string

	// LoginRateLimit は1分あたり・IPあたりの認証リクエスト上限です。0で無効。
	LoginRateLimit int

	LogLevel  slog.Level
	LogFormat string // json | text
}

// ErrMissingJWTSecret はJWT_SECRETが未設定の場合に返されます。
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load は環境変数から設定を読み込み、値を検証します。
// 不正な数値や期間はエラーになります。
func Load() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		DB:                 db.LoadConfigFromEnv(),
		Redis:              redis.LoadConfigFromEnv(),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogFormat:          strings.ToLower(getenv("LOG_FORMAT", "json")),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	var errs []error
	cfg.JWTTTL = duration("JWT_TTL", 24*time.Hour, &errs)
	cfg.DBConnectTimeout = duration("DB_CONNECT_TIMEOUT", 60*time.Second, &errs)
	cfg.StoreTimeout = duration("STORE_TIMEOUT", 5*time.Second, &errs)
	cfg.UserCacheTTL = duration("USER_CACHE_TTL", 5*time.Minute, &errs)
	cfg.BcryptCost = integer("BCRYPT_COST", 10, &errs)
	cfg.LoginRateLimit = integer("LOGIN_RATE_LIMIT", 10, &errs)
	cfg.RunMigrations = boolean("RUN_MIGRATIONS", true, &errs)

	if cfg.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be > 0"))
	}
	if cfg.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be > 0"))
	}
	if cfg.LoginRateLimit < 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT must be >= 0"))
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c Config) Addr() string {
	return ":" + c.Port
}

// NewLogger はLOG_FORMAT / LOG_LEVELに従ったロガーを生成します。
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func integer(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func boolean(key string, def bool, errs *[]error) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
