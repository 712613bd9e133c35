package response

import (
	"time"

	"business-cards/internal/data/entity"
)

// UserResponse is the public profile. It has no password field.
type UserResponse struct {
	ID           string         `json:"_id"`
	Name         entity.Name    `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Address      entity.Address `json:"address"`
	Image        entity.Image   `json:"image"`
	IsBusiness   bool           `json:"isBusiness"`
	IsAdmin      bool           `json:"isAdmin"`
	CreatedCards []string       `json:"createdCards"`
	LikedCards   []string       `json:"likedCards"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Phone:        user.Phone,
		Address:      user.Address,
		Image:        user.Image,
		IsBusiness:   user.IsBusiness,
		IsAdmin:      user.IsAdmin,
		CreatedCards: nonNil(user.CreatedCards),
		LikedCards:   nonNil(user.LikedCards),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u))
	}
	return out
}

// nonNil keeps empty lists rendering as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
