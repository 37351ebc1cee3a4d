// Package usecase はタスク操作のビジネスロジックを実装します。
package usecase

import (
	"errors"
	"strings"
)

// ErrMissingRequester is returned when an operation is called without an authenticated user id.
var ErrMissingRequester = errors.New("requester id is required")

// ValidationError lists the task fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}
