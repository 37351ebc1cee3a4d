// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/apperr"
)

// TaskUsecase はタスク操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TaskUsecase interface {
	Create(ctx context.Context, requesterID string, in usecase.CreateInput) (*entity.Task, error)
	List(ctx context.Context, requesterID string) ([]entity.Task, error)
	Get(ctx context.Context, requesterID, id string) (*entity.Task, error)
	Update(ctx context.Context, requesterID, id string, patch entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, requesterID, id string) error
}

// TaskHandler はタスクのHTTPリクエストを処理します。
// 認証ゲートの後ろにのみ登録され、要求者のIDはコンテキストから取得します。
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler は指定されたusecaseでTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create は POST /api/tasks を処理します。
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Invalid request body"})
		return
	}

	task, err := h.uc.Create(c.Request.Context(), userID, usecase.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTaskRes(task))
}

// List は GET /api/tasks を処理します。タスクがない場合は空配列を返します。
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}
	tasks, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskListRes(tasks))
}

// Get は GET /api/tasks/:id を処理します。
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}
	task, err := h.uc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Update は PUT /api/tasks/:id を処理します。ボディに含まれるフィールドのみ更新します。
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}
	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Invalid request body"})
		return
	}

	task, err := h.uc.Update(c.Request.Context(), userID, c.Param("id"), entity.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskRes(task))
}

// Delete は DELETE /api/tasks/:id を処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := requester(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Task deleted"})
}

// requester returns the authenticated user id or writes 401.
func requester(c *gin.Context) (string, bool) {
	userID, ok := jwtmw.UserIDFromGin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// writeError translates usecase and store errors into responses.
// Missing and not-owned tasks produce the same 404.
func writeError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.MessageRes{Message: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.MessageRes{Message: "Task not found"})
	case errors.Is(err, usecase.ErrMissingRequester):
		c.JSON(http.StatusUnauthorized, dto.MessageRes{Message: "Unauthorized"})
	case errors.Is(err, apperr.ErrStoreUnavailable):
		slog.Error("task store unavailable", "error", err, "path", c.FullPath())
		c.JSON(http.StatusServiceUnavailable, dto.MessageRes{Message: "Service unavailable"})
	default:
		slog.Error("task request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.MessageRes{Message: "Internal server error"})
	}
}
