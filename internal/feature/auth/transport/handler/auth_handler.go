// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンとプロフィールを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンとプロフィールを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// Profile は認証済みユーザーの最新のプロフィールを返します。
	Profile(ctx context.Context, userID string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - JSONとして解釈できない場合は400を返却
// - バリデーションエラー時は違反フィールド付きで400を返却
// - メール重複時は409を返却
// - 成功時はトークンとプロフィール付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register request rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Invalid request body"})
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *usecase.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Validation failed", Fields: verr.Fields})
		case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
			slog.Info("register conflict", "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Message: "Email already registered"})
		default:
			writeServerError(c, "register failed", err)
		}
		return
	}

	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - JSONとして解釈できない場合は400を返却
// - 空のメールアドレス・パスワードは認証失敗として扱う
// - 認証失敗時は401を返却（メールアドレスの存在有無は区別しない）
// - 認証成功時はトークンとプロフィール付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Invalid request body"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、メールアドレスはログに残さない
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Invalid credentials"})
			return
		}
		writeServerError(c, "login failed", err)
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{Token: res.Token, User: dto.NewUserRes(res.User)})
}

// Me は認証済みユーザーのプロフィールを返します。
// トークンは有効でもユーザーが存在しない場合は401を返却します。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Unauthorized"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			slog.Warn("token subject no longer exists", "user_id", userID)
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Unauthorized"})
			return
		}
		writeServerError(c, "profile lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// writeServerError maps store faults to 503 and everything else to 500.
// The underlying error is logged, never returned.
func writeServerError(c *gin.Context, msg string, err error) {
	if errors.Is(err, apperr.ErrStoreUnavailable) {
		slog.Error(msg, "error", err, "path", c.FullPath())
		c.JSON(http.StatusServiceUnavailable, dto.ErrorRes{Message: "Service unavailable"})
		return
	}
	slog.Error(msg, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal server error"})
}
