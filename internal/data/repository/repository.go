package repository

import (
	"context"
	"errors"

	"business-cards/pkg/database"

	"go.uber.org/zap"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrBizNumberTaken = errors.New("business number already exists")
)

const (
	emailConstraint     = "users_email_key"
	bizNumberConstraint = "cards_biz_number_key"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repository struct {
	User UserRepository
	Card CardRepository

	pinger Pinger
}

// New assembles a Repository from store implementations.
func New(user UserRepository, card CardRepository, pinger Pinger) *Repository {
	return &Repository{User: user, Card: card, pinger: pinger}
}

// NewRepository builds the Postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return New(
		NewUserRepository(db, log),
		NewCardRepository(db, log),
		db,
	)
}

func (r *Repository) Ping(ctx context.Context) error {
	if r.pinger == nil {
		return nil
	}
	return r.pinger.Ping(ctx)
}
