package response

import (
	"time"

	"business-cards/internal/data/entity"
)

type CardOwnerResponse struct {
	ID    string      `json:"_id"`
	Name  entity.Name `json:"name"`
	Email string      `json:"email"`
}

type CardResponse struct {
	ID          string             `json:"_id"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Description string             `json:"description"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Web         *string            `json:"web,omitempty"`
	Image       entity.Image       `json:"image"`
	Address     entity.Address     `json:"address"`
	BizNumber   int                `json:"bizNumber"`
	Likes       []string           `json:"likes"`
	UserID      *CardOwnerResponse `json:"userId"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func CardToResponse(card *entity.Card) CardResponse {
	resp := CardResponse{
		ID:          card.ID.String(),
		Title:       card.Title,
		Subtitle:    card.Subtitle,
		Description: card.Description,
		Phone:       card.Phone,
		Email:       card.Email,
		Web:         card.Web,
		Image:       card.Image,
		Address:     card.Address,
		BizNumber:   card.BizNumber,
		Likes:       nonNil(card.Likes),
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}

	if card.Owner != nil {
		resp.UserID = &CardOwnerResponse{
			ID:    card.Owner.ID.String(),
			Name:  card.Owner.Name,
			Email: card.Owner.Email,
		}
	}

	return resp
}

func CardsToResponse(cards []*entity.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardToResponse(c))
	}
	return out
}
