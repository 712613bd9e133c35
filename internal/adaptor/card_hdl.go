package adaptor

import (
	"net/http"

	"business-cards/internal/dto/request"
	"business-cards/internal/usecase"
	"business-cards/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CardHandler struct {
	service usecase.CardService
	log     *zap.Logger
}

func NewCardHandler(service usecase.CardService, log *zap.Logger) *CardHandler {
	return &CardHandler{
		service: service,
		log:     log.With(zap.String("handler", "card")),
	}
}

// GetAllCards handles GET /api/card/cards (public)
func (h *CardHandler) GetAllCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.GetAllCards(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all cards")
		return
	}

	utils.ResponseList(w, cards, len(cards))
}

// GetMyCards handles GET /api/card/my-cards
func (h *CardHandler) GetMyCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	cards, err := h.service.GetUserCards(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get my cards")
		return
	}

	utils.ResponseList(w, cards, len(cards))
}

// GetCardByID handles GET /api/card/card/{id}
func (h *CardHandler) GetCardByID(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.GetCardByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get card by ID")
		return
	}

	utils.ResponseSuccess(w, card)
}

// CreateCard handles POST /api/card/addcard (business users)
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.service.CreateCard(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create card")
		return
	}

	utils.ResponseCreated(w, card)
}

// UpdateCard handles PUT /api/card/card/{id} (owner only)
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.UpdateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	card, err := h.service.UpdateCard(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update card")
		return
	}

	utils.ResponseSuccess(w, card)
}

// ToggleLike handles PATCH /api/card/card/{id}/like
func (h *CardHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	card, err := h.service.ToggleLike(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle like")
		return
	}

	utils.ResponseSuccess(w, card)
}

// DeleteCard handles DELETE /api/card/card/{id} (owner or admin)
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access denied token is required")
		return
	}

	if err := h.service.DeleteCard(r.Context(), chi.URLParam(r, "id"), identity); err != nil {
		handleServiceError(w, h.log, err, "delete card")
		return
	}

	utils.ResponseMessage(w, "Card deleted successfully")
}
