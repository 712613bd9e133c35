package usecase

import (
	"time"

	"business-cards/internal/data/repository"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

// TokenIssuer signs identity tokens. *token.Manager implements it.
type TokenIssuer interface {
	Issue(identity token.Identity) (string, time.Time, error)
}

type Service struct {
	Auth AuthService
	User UserService
	Card CardService
}

func NewService(repo *repository.Repository, tokens TokenIssuer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth: NewAuthService(repo, tokens, config, log),
		User: NewUserService(repo.User, config, log),
		Card: NewCardService(repo.Card, log),
	}
}
