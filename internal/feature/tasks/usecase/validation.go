package usecase

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"task_backend/internal/feature/tasks/domain/entity"
)

const (
	// MaxTitleLength はタイトルの最大文字数です。
	MaxTitleLength = 200
	// MaxDescriptionLength は説明の最大文字数です。
	MaxDescriptionLength = 2000
)

var (
	validate       = validator.New()
	titleTag       = "max=" + strconv.Itoa(MaxTitleLength)
	descriptionTag = "max=" + strconv.Itoa(MaxDescriptionLength)
)

// CreateInput is the client-supplied part of a new task.
type CreateInput struct {
	Title       string
	Description string
}

// ValidateCreate checks a new task. Title is expected to be trimmed already.
func ValidateCreate(in CreateInput) error {
	var fields []string
	if !validTitle(in.Title) {
		fields = append(fields, "title")
	}
	if !validDescription(in.Description) {
		fields = append(fields, "description")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePatch checks only the fields present in p.
func ValidatePatch(p entity.TaskPatch) error {
	var fields []string
	if p.Title != nil && !validTitle(*p.Title) {
		fields = append(fields, "title")
	}
	if p.Description != nil && !validDescription(*p.Description) {
		fields = append(fields, "description")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validTitle(s string) bool {
	return strings.TrimSpace(s) != "" && validate.Var(s, titleTag) == nil
}

func validDescription(s string) bool {
	return validate.Var(s, descriptionTag) == nil
}
