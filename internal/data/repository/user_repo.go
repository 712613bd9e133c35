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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateBusinessStatus(ctx context.Context, id uuid.UUID, isBusiness bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// createdCards and likedCards are computed from the card tables on every read.
const selectUser = `
	SELECT u.id, u.name, u.email, u.password, u.phone, u.address, u.image,
	       u.is_business, u.is_admin, u.created_at, u.updated_at,
	       ARRAY(SELECT c.id::text FROM cards c WHERE c.owner_id = u.id ORDER BY c.created_at),
	       ARRAY(SELECT l.card_id::text FROM card_likes l WHERE l.user_id = u.id ORDER BY l.created_at)
	FROM users u
`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Address,
		&user.Image,
		&user.IsBusiness,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.CreatedCards,
		&user.LikedCards,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. A taken email returns ErrEmailTaken.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password, phone, address, image,
		                   is_business, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Address,
		user.Image,
		user.IsBusiness,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if database.IsUniqueViolation(err, emailConstraint) {
		return fmt.Errorf("create user %s: %w", user.Email, ErrEmailTaken)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := scanUser(ur.db.QueryRow(ctx, selectUser+" WHERE u.id = $1", id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := scanUser(ur.db.QueryRow(ctx, selectUser+" WHERE u.email = $1", email))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := ur.db.Query(ctx, selectUser+" ORDER BY u.created_at")
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user", zap.Error(err))
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Update overwrites the mutable profile columns. The admin flag is never written.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password = $4, phone = $5, address = $6,
		    image = $7, is_business = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Address,
		user.Image,
		user.IsBusiness,
		user.UpdatedAt,
	)

	if database.IsUniqueViolation(err, emailConstraint) {
		return fmt.Errorf("update user %s: %w", user.ID.String(), ErrEmailTaken)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID.String(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) UpdateBusinessStatus(ctx context.Context, id uuid.UUID, isBusiness bool) error {
	query := `UPDATE users SET is_business = $2, updated_at = NOW() WHERE id = $1`

	tag, err := ur.db.Exec(ctx, query, id, isBusiness)
	if err != nil {
		ur.log.Error("Failed to update business status",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update business status %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update business status %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

// Delete removes the user row. Owned cards and likes stay behind.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
