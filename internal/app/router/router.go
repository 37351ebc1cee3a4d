// Package router はHTTPリクエストパイプラインとルーティングを構築します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	healthhandler "task_backend/internal/platform/http/handler"
	"task_backend/internal/platform/http/middleware"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/ratelimiter"
)

// Stage は名前付きのミドルウェア段です。
type Stage struct {
	Name    string
	Handler gin.HandlerFunc
}

// Deps はルーター構築に必要なハンドラーと設定です。
type Deps struct {
	Auth         *authhandler.AuthHandler
	Tasks        *taskhandler.TaskHandler
	Verifier     jwtmw.TokenVerifier
	LoginLimiter ratelimiter.RateLimiterInterface
	CORSOrigins  []string
	Logger       *slog.Logger
}

// Pipeline は全リクエストに適用される段を実行順に返します。
// CORSはオリジンが設定されていない場合は含まれません。
func Pipeline(d Deps) []Stage {
	stages := []Stage{
		{Name: "recovery", Handler: gin.Recovery()},
		{Name: "request-id", Handler: middleware.RequestID()},
		{Name: "request-log", Handler: middleware.RequestLogger(d.Logger)},
	}
	if h := middleware.CORS(d.CORSOrigins); h != nil {
		stages = append(stages, Stage{Name: "cors", Handler: h})
	}
	return stages
}

// NewRouter はパイプラインとルートグループを組み立てます。
//
//	public:    /health, /healthz
//	auth:      login-rate-limit → /api/auth/register, /api/auth/login
//	protected: auth-gate → /api/users/me, /api/tasks...
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	for _, s := range Pipeline(d) {
		r.Use(s.Handler)
	}

	// 認証不要
	public := r.Group("")
	healthhandler.Register(public)

	// 新規登録・ログイン（IPごとの回数制限あり）
	auth := r.Group("/api/auth", middleware.RateLimit(d.LoginLimiter))
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
	}

	// 認証必須のルート
	protected := r.Group("/api", jwtmw.AuthRequired(d.Verifier))
	{
		protected.GET("/users/me", d.Auth.Me)

		protected.POST("/tasks", d.Tasks.Create)
		protected.GET("/tasks", d.Tasks.List)
		protected.GET("/tasks/:id", d.Tasks.Get)
		protected.PUT("/tasks/:id", d.Tasks.Update)
		protected.DELETE("/tasks/:id", d.Tasks.Delete)
	}

	return r
}
