package entity

import "github.com/google/uuid"

type Card struct {
	Base
	Title       string    `db:"title"`
	Subtitle    string    `db:"subtitle"`
	Description string    `db:"description"`
	Phone       string    `db:"phone"`
	Email       string    `db:"email"`
	Web         *string   `db:"web"`
	Image       Image     `db:"image"`
	Address     Address   `db:"address"`
	OwnerID     uuid.UUID `db:"owner_id"`
	BizNumber   int       `db:"biz_number"`

	// Likes holds user ids in like order.
	Likes []string `db:"-"`
	// Owner is nil when the owning user no longer exists.
	Owner *CardOwner `db:"-"`
}

type CardOwner struct {
	ID    uuid.UUID
	Name  Name
	Email string
}
