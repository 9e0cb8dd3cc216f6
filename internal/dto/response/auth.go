package response

import (
	"time"

	"interview-booking/internal/data/entity"
)

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Role        string  `json:"role"`
	Approved    bool    `json:"approved,omitempty"`
	Verified    bool    `json:"verified,omitempty"`
	SessionRate int64   `json:"session_rate,omitempty"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Approved:    user.Approved,
		Verified:    user.Verified,
		SessionRate: user.SessionRate,
	}
}
