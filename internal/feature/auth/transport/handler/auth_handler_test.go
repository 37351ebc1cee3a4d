package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	LoginFunc    func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	ProfileFunc  func(ctx context.Context, userID string) (*entity.User, error)
}

// Register is the mock implementation of the Register method.
func (m *mockAuthUsecase) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &usecase.AuthResult{Token: "tok", User: anaUser()}, nil // Default: success
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, usecase.ErrInvalidCredentials // Default: failure
}

// Profile is the mock implementation of the Profile method.
func (m *mockAuthUsecase) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, usecase.ErrUserNotFound
}

func anaUser() *entity.User {
	return &entity.User{ID: "01HZX8Y3M9Q4V5R6S7T8U9W0XA", Name: "Ana", Email: "ana@x.com", PasswordHash: "$2a$10$hash"}
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	storeDown := fmt.Errorf("create user: %w", apperr.ErrStoreUnavailable)

	tests := []struct {
		name             string
		requestBody      any
		mockRegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
		expectedStatus   int
		expectedBody     string
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"token":"tok","user":{"id":"01HZX8Y3M9Q4V5R6S7T8U9W0XA","name":"Ana","email":"ana@x.com"}}`,
		},
		{
			name:           "failure: malformed json",
			requestBody:    `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:        "failure: validation error lists fields",
			requestBody: gin.H{"name": "", "email": "bad", "password": "1"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				return nil, &usecase.ValidationError{Fields: []string{"name", "email", "password"}}
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Validation failed","fields":["name","email","password"]}`,
		},
		{
			name:        "failure: duplicate email",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				return nil, usecase.ErrEmailAlreadyRegistered
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"message":"Email already registered"}`,
		},
		{
			name:        "failure: store unavailable",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				return nil, storeDown
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"message":"Service unavailable"}`,
		},
		{
			name:        "failure: unexpected error is not leaked",
			requestBody: gin.H{"name": "Ana", "email": "ana@x.com", "password": "secret1"},
			mockRegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
				return nil, errors.New("failed to sign token: boom")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{RegisterFunc: tt.mockRegisterFunc})
			router := gin.New()
			router.POST("/api/auth/register", handler.Register)

			w := postJSON(router, "/api/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hash")
		})
	}
}

func TestAuthHandler_Register_PassesRawInput(t *testing.T) {
	var got usecase.RegisterInput
	handler := NewAuthHandler(&mockAuthUsecase{
		RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			got = in
			return &usecase.AuthResult{Token: "tok", User: anaUser()}, nil
		},
	})
	router := gin.New()
	router.POST("/register", handler.Register)

	w := postJSON(router, "/register", gin.H{"name": "Ana", "email": "Ana@X.com", "password": "secret1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, usecase.RegisterInput{Name: "Ana", Email: "Ana@X.com", Password: "secret1"}, got)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		mockLoginFunc  func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"email": "ana@x.com", "password": "secret1"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
				return &usecase.AuthResult{Token: "dummy-jwt-token", User: anaUser()}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"dummy-jwt-token","user":{"id":"01HZX8Y3M9Q4V5R6S7T8U9W0XA","name":"Ana","email":"ana@x.com"}}`,
		},
		{
			name:        "failure: missing password is invalid credentials",
			requestBody: gin.H{"email": "ana@x.com"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
				if password == "" {
					return nil, usecase.ErrInvalidCredentials
				}
				return &usecase.AuthResult{Token: "dummy-jwt-token", User: anaUser()}, nil
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Invalid credentials"}`,
		},
		{
			name:           "failure: malformed json",
			requestBody:    `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:           "failure: invalid credentials",
			requestBody:    gin.H{"email": "ana@x.com", "password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Invalid credentials"}`,
		},
		{
			name:        "failure: store unavailable is not reported as bad credentials",
			requestBody: gin.H{"email": "ana@x.com", "password": "secret1"},
			mockLoginFunc: func(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
				return nil, fmt.Errorf("failed to look up user: %w", apperr.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"message":"Service unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc})
			router := gin.New()
			router.POST("/api/auth/login", handler.Login)

			w := postJSON(router, "/api/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	withUser := func(id string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if id != "" {
				c.Set(jwtmw.ContextUserID, id)
			}
			c.Next()
		}
	}

	tests := []struct {
		name           string
		userID         string
		profileFunc    func(ctx context.Context, userID string) (*entity.User, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			userID: "01HZX8Y3M9Q4V5R6S7T8U9W0XA",
			profileFunc: func(ctx context.Context, userID string) (*entity.User, error) {
				return anaUser(), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"01HZX8Y3M9Q4V5R6S7T8U9W0XA","name":"Ana","email":"ana@x.com"}`,
		},
		{
			name:           "no identity on context",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:           "user no longer exists",
			userID:         "gone",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Unauthorized"}`,
		},
		{
			name:   "store unavailable",
			userID: "01HZX8Y3M9Q4V5R6S7T8U9W0XA",
			profileFunc: func(ctx context.Context, userID string) (*entity.User, error) {
				return nil, apperr.ErrStoreUnavailable
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"message":"Service unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockAuthUsecase{ProfileFunc: tt.profileFunc})
			router := gin.New()
			router.GET("/api/users/me", withUser(tt.userID), handler.Me)

			req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
