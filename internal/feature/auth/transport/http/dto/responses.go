package dto

import "task_backend/internal/feature/auth/domain/entity"

// UserRes is the public profile of a user. It never carries the password hash.
type UserRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// ErrorRes is the error body for every failed auth request.
type ErrorRes struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NewUserRes converts a user entity into its public profile.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Name: u.Name, Email: u.Email}
}
