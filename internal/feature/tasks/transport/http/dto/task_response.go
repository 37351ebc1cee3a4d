package dto

import (
	"time"

	"task_backend/internal/feature/tasks/domain/entity"
)

// TaskRes is the JSON representation of a task.
type TaskRes struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageRes is a body carrying only a message, used for errors and delete confirmations.
type MessageRes struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewTaskRes converts a task entity into its response form.
func NewTaskRes(t *entity.Task) TaskRes {
	return TaskRes{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

// NewTaskListRes converts tasks into responses. An empty input yields an empty, non-nil slice.
func NewTaskListRes(tasks []entity.Task) []TaskRes {
	out := make([]TaskRes, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskRes(&tasks[i]))
	}
	return out
}
