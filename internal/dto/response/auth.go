package response

import (
	"time"

	"business-cards/internal/data/entity"
)

type AuthResponse struct {
	UserResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		UserResponse: UserToResponse(user),
		Token:        token,
		ExpiresAt:    expiresAt,
	}
}
