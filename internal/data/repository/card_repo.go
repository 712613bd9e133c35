package repository

import (
	"context"
	"errors"
	"fmt"

	"business-cards/internal/data/entity"
	"business-cards/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)
	FindAll(ctx context.Context) ([]*entity.Card, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Card, error)
	Update(ctx context.Context, card *entity.Card) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleLike removes userID from the card's likes if present and adds it
	// otherwise. It reports whether the user likes the card afterwards.
	ToggleLike(ctx context.Context, cardID, userID uuid.UUID) (bool, error)
}

type cardRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCardRepository(db database.PgxIface, log *zap.Logger) CardRepository {
	return &cardRepository{
		db:  db,
		log: log.With(zap.String("repository", "card")),
	}
}

// The owner join is a LEFT JOIN: cards outlive their owners.
const selectCard = `
	SELECT c.id, c.title, c.subtitle, c.description, c.phone, c.email, c.web,
	       c.image, c.address, c.owner_id, c.biz_number, c.created_at, c.updated_at,
	       ARRAY(SELECT l.user_id::text FROM card_likes l WHERE l.card_id = c.id ORDER BY l.created_at),
	       u.name, u.email
	FROM cards c
	LEFT JOIN users u ON u.id = c.owner_id
`

func scanCard(row pgx.Row) (*entity.Card, error) {
	var (
		card       entity.Card
		ownerName  *entity.Name
		ownerEmail *string
	)
	err := row.Scan(
		&card.ID,
		&card.Title,
		&card.Subtitle,
		&card.Description,
		&card.Phone,
		&card.Email,
		&card.Web,
		&card.Image,
		&card.Address,
		&card.OwnerID,
		&card.BizNumber,
		&card.CreatedAt,
		&card.UpdatedAt,
		&card.Likes,
		&ownerName,
		&ownerEmail,
	)
	if err != nil {
		return nil, err
	}

	if ownerName != nil && ownerEmail != nil {
		card.Owner = &entity.CardOwner{ID: card.OwnerID, Name: *ownerName, Email: *ownerEmail}
	}
	return &card, nil
}

// Create inserts a card. A biz number collision returns ErrBizNumberTaken.
func (r *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	query := `
		INSERT INTO cards (id, title, subtitle, description, phone, email, web,
		                   image, address, owner_id, biz_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Description,
		card.Phone,
		card.Email,
		card.Web,
		card.Image,
		card.Address,
		card.OwnerID,
		card.BizNumber,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if database.IsUniqueViolation(err, bizNumberConstraint) {
		r.log.Warn("Biz number collision", zap.Int("biz_number", card.BizNumber))
		return fmt.Errorf("create card: %w", ErrBizNumberTaken)
	}
	if err != nil {
		r.log.Error("Failed to create card",
			zap.Error(err),
			zap.String("owner_id", card.OwnerID.String()),
		)
		return fmt.Errorf("create card: %w", err)
	}

	return nil
}

func (r *cardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	card, err := scanCard(r.db.QueryRow(ctx, selectCard+" WHERE c.id = $1", id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find card by ID",
			zap.Error(err),
			zap.String("card_id", id.String()),
		)
		return nil, fmt.Errorf("find card by ID %s: %w", id.String(), err)
	}

	return card, nil
}

func (r *cardRepository) FindAll(ctx context.Context) ([]*entity.Card, error) {
	return r.list(ctx, selectCard+" ORDER BY c.created_at")
}

func (r *cardRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Card, error) {
	return r.list(ctx, selectCard+" WHERE c.owner_id = $1 ORDER BY c.created_at", ownerID)
}

func (r *cardRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Card, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list cards", zap.Error(err))
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*entity.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			r.log.Error("Failed to scan card", zap.Error(err))
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return cards, nil
}

// Update writes the editable card fields. Owner and biz number are fixed.
func (r *cardRepository) Update(ctx context.Context, card *entity.Card) error {
	query := `
		UPDATE cards
		SET title = $2, subtitle = $3, description = $4, phone = $5, email = $6,
		    web = $7, image = $8, address = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Description,
		card.Phone,
		card.Email,
		card.Web,
		card.Image,
		card.Address,
		card.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update card",
			zap.Error(err),
			zap.String("card_id", card.ID.String()),
		)
		return fmt.Errorf("update card %s: %w", card.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update card %s: %w", card.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete removes the card. Its likes go with it via ON DELETE CASCADE.
func (r *cardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete card",
			zap.Error(err),
			zap.String("card_id", id.String()),
		)
		return fmt.Errorf("delete card %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete card %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *cardRepository) ToggleLike(ctx context.Context, cardID, userID uuid.UUID) (liked bool, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin like transaction", zap.Error(err))
		return false, fmt.Errorf("begin toggle like: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2`,
		cardID, userID,
	)
	if err != nil {
		r.log.Error("Failed to remove like",
			zap.Error(err),
			zap.String("card_id", cardID.String()),
			zap.String("user_id", userID.String()),
		)
		return false, fmt.Errorf("remove like: %w", err)
	}

	// Nothing removed means the user had not liked the card yet.
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO card_likes (card_id, user_id, created_at)
			 VALUES ($1, $2, NOW())
			 ON CONFLICT (card_id, user_id) DO NOTHING`,
			cardID, userID,
		)
		if database.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("add like to card %s: %w", cardID.String(), ErrNotFound)
		}
		if err != nil {
			r.log.Error("Failed to add like",
				zap.Error(err),
				zap.String("card_id", cardID.String()),
				zap.String("user_id", userID.String()),
			)
			return false, fmt.Errorf("add like: %w", err)
		}
		liked = true
	}

	if err = tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit like transaction", zap.Error(err))
		return false, fmt.Errorf("commit toggle like: %w", err)
	}

	return liked, nil
}
