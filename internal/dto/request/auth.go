package request

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Role     string  `json:"role" validate:"required,oneof=user interviewer"`

	// Interviewer applicants state their per-session rate in rupees.
	SessionRate int64 `json:"session_rate,omitempty" validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
