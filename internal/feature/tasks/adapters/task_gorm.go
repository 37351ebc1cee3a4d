// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/db"
	"task_backend/internal/shared/apperr"
)

// taskGorm はTaskRepositoryインターフェースのGORM実装です。
// すべてのクエリは id と owner_id の両方で絞り込みます。
type taskGorm struct {
	db      *gorm.DB
	timeout time.Duration
}

// taskGormがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm は指定されたgorm.DB接続でtaskGormの新しいインスタンスを生成します。
func NewTaskGorm(db *gorm.DB, timeout time.Duration) *taskGorm {
	return &taskGorm{db: db, timeout: timeout}
}

func (r *taskGorm) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// scoped は所有者で絞り込んだクエリを返します。
func scoped(tx *gorm.DB, id, ownerID string) *gorm.DB {
	return tx.Where("id = ? AND owner_id = ?", id, ownerID)
}

// Create はタスクを追加します。
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	if t == nil {
		return errors.New("task is nil")
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return db.Unavailable("create task", err)
	}
	return nil
}

// ListByOwner は所有者のタスクを created_at, id の昇順で返します。
func (r *taskGorm) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tasks := []entity.Task{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, db.Unavailable("list tasks", err)
	}
	return tasks, nil
}

// FindByIDForOwner は所有者のタスクを1件取得します。
// 存在しない場合も他人のタスクの場合も apperr.ErrNotFound を返します。
func (r *taskGorm) FindByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return findScoped(r.db.WithContext(ctx), id, ownerID)
}

func findScoped(tx *gorm.DB, id, ownerID string) (*entity.Task, error) {
	var t entity.Task
	if err := scoped(tx, id, ownerID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %s: %w", id, apperr.ErrNotFound)
		}
		return nil, db.Unavailable("find task", err)
	}
	return &t, nil
}

// UpdateForOwner はパッチのフィールドのみを1トランザクションで更新し、更新後の行を返します。
func (r *taskGorm) UpdateForOwner(ctx context.Context, id, ownerID string, patch entity.TaskPatch) (*entity.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	updates := map[string]any{"updated_at": time.Now()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	var out *entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// MySQL reports changed rows, not matched rows; existence is decided by the re-read.
		if err := scoped(tx.Model(&entity.Task{}), id, ownerID).Updates(updates).Error; err != nil {
			return db.Unavailable("update task", err)
		}
		t, err := findScoped(tx, id, ownerID)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrStoreUnavailable) {
			return nil, err
		}
		// begin / commit failures
		return nil, db.Unavailable("update task", err)
	}
	return out, nil
}

// DeleteForOwner は所有者のタスクを削除します。対象がなければ apperr.ErrNotFound を返します。
func (r *taskGorm) DeleteForOwner(ctx context.Context, id, ownerID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := scoped(r.db.WithContext(ctx), id, ownerID).Delete(&entity.Task{})
	if res.Error != nil {
		return db.Unavailable("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
