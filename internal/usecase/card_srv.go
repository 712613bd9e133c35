package usecase

import (
	"context"
	"errors"
	"time"

	"business-cards/internal/data/entity"
	"business-cards/internal/data/repository"
	"business-cards/internal/dto/request"
	"business-cards/internal/dto/response"
	"business-cards/pkg/apperror"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgCardNotFound     = "Card not found"
	msgCardNotOwned     = "Card not found or unauthorized"
	msgCardDeleteDenied = "Not authorized to delete this card"
	msgBizNumberTaken   = "Business number already exists"
)

type CardService interface {
	GetAllCards(ctx context.Context) ([]response.CardResponse, error)
	GetUserCards(ctx context.Context, userID string) ([]response.CardResponse, error)
	GetCardByID(ctx context.Context, cardID string) (*response.CardResponse, error)
	CreateCard(ctx context.Context, ownerID string, req *request.CreateCardRequest) (*response.CardResponse, error)
	UpdateCard(ctx context.Context, cardID, ownerID string, req *request.UpdateCardRequest) (*response.CardResponse, error)
	ToggleLike(ctx context.Context, cardID, userID string) (*response.CardResponse, error)
	DeleteCard(ctx context.Context, cardID string, caller token.Identity) error
}

type cardService struct {
	cardRepo  repository.CardRepository
	bizNumber func() int
	log       *zap.Logger
}

func NewCardService(cardRepo repository.CardRepository, log *zap.Logger) CardService {
	return &cardService{
		cardRepo:  cardRepo,
		bizNumber: utils.GenerateBizNumber,
		log:       log.With(zap.String("service", "card")),
	}
}

func (cs *cardService) GetAllCards(ctx context.Context) ([]response.CardResponse, error) {
	cards, err := cs.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list cards", err)
	}
	return response.CardsToResponse(cards), nil
}

func (cs *cardService) GetUserCards(ctx context.Context, userID string) ([]response.CardResponse, error) {
	ownerID, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	cards, err := cs.cardRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal("list user cards", err)
	}
	return response.CardsToResponse(cards), nil
}

func (cs *cardService) GetCardByID(ctx context.Context, cardID string) (*response.CardResponse, error) {
	card, err := cs.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	resp := response.CardToResponse(card)
	return &resp, nil
}

// CreateCard does not pre-check the biz number; the store's unique index does.
func (cs *cardService) CreateCard(ctx context.Context, ownerID string, req *request.CreateCardRequest) (*response.CardResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Create card validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	owner, err := parseID(ownerID, "user")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	card := &entity.Card{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Web:         req.Web,
		Image:       imageFromRequest(req.Image),
		Address:     addressFromRequest(req.Address),
		OwnerID:     owner,
		BizNumber:   cs.bizNumber(),
	}

	if err := cs.cardRepo.Create(ctx, card); err != nil {
		if errors.Is(err, repository.ErrBizNumberTaken) {
			return nil, apperror.Conflict("card", msgBizNumberTaken, err)
		}
		return nil, apperror.Internal("create card", err)
	}

	cs.log.Info("Card created",
		zap.String("card_id", card.ID.String()),
		zap.String("owner_id", ownerID),
		zap.Int("biz_number", card.BizNumber))

	return cs.GetCardByID(ctx, card.ID.String())
}

// UpdateCard answers the same NotFound for a missing card and a card owned
// by someone else.
func (cs *cardService) UpdateCard(ctx context.Context, cardID, ownerID string, req *request.UpdateCardRequest) (*response.CardResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Update card validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}
	if req.IsEmpty() {
		return nil, apperror.Validation("At least one field must be provided", nil)
	}

	id, err := parseID(cardID, "card")
	if err != nil {
		return nil, err
	}

	card, err := cs.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find card", err)
	}
	if card == nil || card.OwnerID.String() != ownerID {
		cs.log.Warn("Update of missing or foreign card",
			zap.String("card_id", cardID),
			zap.String("caller_id", ownerID))
		return nil, apperror.NotFound("card", msgCardNotOwned)
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Subtitle != nil {
		card.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Phone != nil {
		card.Phone = *req.Phone
	}
	if req.Email != nil {
		card.Email = *req.Email
	}
	if req.Web != nil {
		card.Web = req.Web
	}
	if req.Image != nil {
		card.Image = imageFromRequest(*req.Image)
	}
	if req.Address != nil {
		card.Address = addressFromRequest(*req.Address)
	}
	card.UpdatedAt = time.Now()

	if err := cs.cardRepo.Update(ctx, card); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("card", msgCardNotOwned)
		}
		return nil, apperror.Internal("update card", err)
	}

	cs.log.Info("Card updated", zap.String("card_id", cardID))

	resp := response.CardToResponse(card)
	return &resp, nil
}

func (cs *cardService) ToggleLike(ctx context.Context, cardID, userID string) (*response.CardResponse, error) {
	card, err := cs.findCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	liker, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	liked, err := cs.cardRepo.ToggleLike(ctx, card.ID, liker)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("card", msgCardNotFound)
		}
		return nil, apperror.Internal("toggle like", err)
	}

	cs.log.Info("Card like toggled",
		zap.String("card_id", cardID),
		zap.String("user_id", userID),
		zap.Bool("liked", liked))

	return cs.GetCardByID(ctx, cardID)
}

func (cs *cardService) DeleteCard(ctx context.Context, cardID string, caller token.Identity) error {
	card, err := cs.findCard(ctx, cardID)
	if err != nil {
		return err
	}

	if card.OwnerID != caller.UserID && !caller.IsAdmin {
		cs.log.Warn("Card delete denied",
			zap.String("card_id", cardID),
			zap.String("caller_id", caller.UserID.String()))
		return apperror.Forbidden("card", msgCardDeleteDenied)
	}

	if err := cs.cardRepo.Delete(ctx, card.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("card", msgCardNotFound)
		}
		return apperror.Internal("delete card", err)
	}

	cs.log.Info("Card deleted",
		zap.String("card_id", cardID),
		zap.String("caller_id", caller.UserID.String()),
		zap.Bool("as_admin", caller.IsAdmin && card.OwnerID != caller.UserID))

	return nil
}

func (cs *cardService) findCard(ctx context.Context, cardID string) (*entity.Card, error) {
	id, err := parseID(cardID, "card")
	if err != nil {
		return nil, err
	}

	card, err := cs.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find card", err)
	}
	if card == nil {
		return nil, apperror.NotFound("card", msgCardNotFound)
	}
	return card, nil
}
