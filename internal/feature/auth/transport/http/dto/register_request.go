package dto

// RegisterReq represents the request body for /api/auth/register.
// Field rules live in usecase.ValidateRegistration so that every violated
// field is reported at once.
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
