package usecase

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxPasswordBytes はbcryptが扱える最大バイト数です。
const maxPasswordBytes = 72

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterInput is the data required to register a new user.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6"`
}

// NormalizeEmail trims and lower-cases an email so comparisons are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks in and returns a *ValidationError naming every violated field.
// It has no side effects and expects Name/Email already normalized.
func ValidateRegistration(in RegisterInput) error {
	var fields []string
	add := func(f string) {
		for _, existing := range fields {
			if existing == f {
				return
			}
		}
		fields = append(fields, f)
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			add(strings.ToLower(fe.Field()))
		}
	}
	if len(in.Password) > maxPasswordBytes {
		add("password")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
