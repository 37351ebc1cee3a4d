package usecase

import (
	"context"
	"fmt"
	"strings"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/shared/apperr"
	"task_backend/internal/shared/ids"
)

// TaskRepository はタスクの永続化層を抽象化します。
// すべての読み書きは所有者で絞り込まれ、所有者を指定しない操作は存在しません。
// 存在しないタスクと他人のタスクはどちらも apperr.ErrNotFound になります。
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	// ListByOwner は作成日時の昇順（同時刻はID順）で返します。
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error)
	FindByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error)
	// UpdateForOwner はパッチを適用し、更新後のタスクを返します。
	UpdateForOwner(ctx context.Context, id, ownerID string, patch entity.TaskPatch) (*entity.Task, error)
	DeleteForOwner(ctx context.Context, id, ownerID string) error
}

// taskUsecase enforces that every operation acts on behalf of a requester.
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// Create stores a new task owned by requesterID.
func (u *taskUsecase) Create(ctx context.Context, requesterID string, in CreateInput) (*entity.Task, error) {
	if requesterID == "" {
		return nil, ErrMissingRequester
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}

	task := &entity.Task{
		ID:          ids.New(),
		OwnerID:     requesterID,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the requester's tasks, oldest first. It never returns nil.
func (u *taskUsecase) List(ctx context.Context, requesterID string) ([]entity.Task, error) {
	if requesterID == "" {
		return nil, ErrMissingRequester
	}
	tasks, err := u.tasks.ListByOwner(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

// Get returns one of the requester's tasks.
func (u *taskUsecase) Get(ctx context.Context, requesterID, id string) (*entity.Task, error) {
	if requesterID == "" {
		return nil, ErrMissingRequester
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	return u.tasks.FindByIDForOwner(ctx, id, requesterID)
}

// Update applies patch to one of the requester's tasks.
// An empty patch returns the task unchanged.
func (u *taskUsecase) Update(ctx context.Context, requesterID, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if requesterID == "" {
		return nil, ErrMissingRequester
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return u.tasks.FindByIDForOwner(ctx, id, requesterID)
	}
	return u.tasks.UpdateForOwner(ctx, id, requesterID, patch)
}

// Delete removes one of the requester's tasks.
func (u *taskUsecase) Delete(ctx context.Context, requesterID, id string) error {
	if requesterID == "" {
		return ErrMissingRequester
	}
	if err := checkID(id); err != nil {
		return err
	}
	return u.tasks.DeleteForOwner(ctx, id, requesterID)
}

// checkID はULIDでないIDをストアに問い合わせずに ErrNotFound として扱います。
func checkID(id string) error {
	if !ids.Valid(id) {
		return fmt.Errorf("task %q: %w", id, apperr.ErrNotFound)
	}
	return nil
}
