// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	// ID is the task identifier (ULID). Immutable.
	ID string `gorm:"primaryKey;size:26"`

	// OwnerID is the id of the user who created the task. Immutable.
	OwnerID string `gorm:"size:26;not null;index:idx_tasks_owner_created,priority:1"`

	// Title is never empty after trimming.
	Title string `gorm:"size:200;not null"`

	Description string `gorm:"size:2000;not null;default:''"`

	Completed bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"index:idx_tasks_owner_created,priority:2"`
	UpdatedAt time.Time
}

// TaskPatch holds the mutable fields of an update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
