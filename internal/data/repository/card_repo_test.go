package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"business-cards/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cardColumns = []string{
	"id", "title", "subtitle", "description", "phone", "email", "web",
	"image", "address", "owner_id", "biz_number", "created_at", "updated_at",
	"likes", "owner_name", "owner_email",
}

func sampleCard(ownerID uuid.UUID) *entity.Card {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	web := "https://example.com"
	return &entity.Card{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:       "Web Development Services",
		Subtitle:    "Modern sites",
		Description: "Full stack web development for small businesses",
		Phone:       "0523456789",
		Email:       "business@example.com",
		Web:         &web,
		Image:       entity.Image{URL: "https://picsum.photos/200", Alt: "logo"},
		Address:     entity.Address{Country: "Israel", City: "Haifa", Street: "Herzl", HouseNumber: 10, Zip: "3303139"},
		OwnerID:     ownerID,
		BizNumber:   123456,
	}
}

func cardRow(rows *pgxmock.Rows, c *entity.Card, likes []string, ownerName *entity.Name, ownerEmail *string) *pgxmock.Rows {
	return rows.AddRow(c.ID, c.Title, c.Subtitle, c.Description, c.Phone, c.Email, c.Web,
		c.Image, c.Address, c.OwnerID, c.BizNumber, c.CreatedAt, c.UpdatedAt,
		likes, ownerName, ownerEmail)
}

func TestCardRepository_CreateBizNumberCollision(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cards")).
		WithArgs(anyArgs(13)...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cards_biz_number_key"})

	err := repo.Create(context.Background(), sampleCard(uuid.New()))
	assert.ErrorIs(t, err, ErrBizNumberTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_FindByIDWithOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	ownerID := uuid.New()
	card := sampleCard(ownerID)
	liker := uuid.NewString()
	name := &entity.Name{First: "Biz", Last: "Owner"}
	email := "business@example.com"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(card.ID).
		WillReturnRows(cardRow(pgxmock.NewRows(cardColumns), card, []string{liker}, name, &email))

	got, err := repo.FindByID(context.Background(), card.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, card.BizNumber, got.BizNumber)
	assert.Equal(t, []string{liker}, got.Likes)
	require.NotNil(t, got.Owner)
	assert.Equal(t, ownerID, got.Owner.ID)
	assert.Equal(t, "Biz", got.Owner.Name.First)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_FindByOwnerDeletedOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	ownerID := uuid.New()

	rows := cardRow(pgxmock.NewRows(cardColumns), sampleCard(ownerID), []string{}, (*entity.Name)(nil), (*string)(nil))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.owner_id = $1")).
		WithArgs(ownerID).
		WillReturnRows(rows)

	cards, err := repo.FindByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Nil(t, cards[0].Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_DeleteMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cards")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ToggleLikeAdds(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	cardID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM card_likes")).
		WithArgs(cardID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO card_likes")).
		WithArgs(cardID, userID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleLike(context.Background(), cardID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ToggleLikeRemoves(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	cardID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM card_likes")).
		WithArgs(cardID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	liked, err := repo.ToggleLike(context.Background(), cardID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ToggleLikeMissingCard(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())
	cardID, userID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM card_likes")).
		WithArgs(cardID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO card_likes")).
		WithArgs(cardID, userID).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	_, err := repo.ToggleLike(context.Background(), cardID, userID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_ToggleLikeBeginFails(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCardRepository(mock, zap.NewNop())

	mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

	_, err := repo.ToggleLike(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
