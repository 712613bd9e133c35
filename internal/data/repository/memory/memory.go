// Package memory keeps users and cards in process memory. It backs
// DB_DRIVER=memory and the service and router tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"business-cards/internal/data/entity"
	"business-cards/internal/data/repository"

	"github.com/google/uuid"
)

type like struct {
	userID uuid.UUID
	at     time.Time
}

type store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
	cards map[uuid.UUID]entity.Card
	likes map[uuid.UUID][]like // card id -> likes in order
	now   func() time.Time
}

// NewRepository returns a Repository whose user and card stores share state,
// so derived fields like createdCards see card writes immediately.
func NewRepository() *repository.Repository {
	s := &store{
		users: make(map[uuid.UUID]entity.User),
		cards: make(map[uuid.UUID]entity.Card),
		likes: make(map[uuid.UUID][]like),
		now:   time.Now,
	}
	return repository.New(&userStore{s}, &cardStore{s}, s)
}

func (s *store) Ping(context.Context) error { return nil }

// hydrateUser fills the derived card lists. Caller holds the lock.
func (s *store) hydrateUser(u entity.User) *entity.User {
	type ref struct {
		id string
		at time.Time
	}
	var created, liked []ref
	for id, c := range s.cards {
		if c.OwnerID == u.ID {
			created = append(created, ref{id.String(), c.CreatedAt})
		}
		for _, l := range s.likes[id] {
			if l.userID == u.ID {
				liked = append(liked, ref{id.String(), l.at})
			}
		}
	}
	sortRefs := func(refs []ref) []string {
		sort.Slice(refs, func(i, j int) bool { return refs[i].at.Before(refs[j].at) })
		out := make([]string, 0, len(refs))
		for _, r := range refs {
			out = append(out, r.id)
		}
		return out
	}
	u.CreatedCards = sortRefs(created)
	u.LikedCards = sortRefs(liked)
	return &u
}

// hydrateCard fills likes and the owner projection. Caller holds the lock.
func (s *store) hydrateCard(c entity.Card) *entity.Card {
	c.Likes = make([]string, 0, len(s.likes[c.ID]))
	for _, l := range s.likes[c.ID] {
		c.Likes = append(c.Likes, l.userID.String())
	}
	c.Owner = nil
	if owner, ok := s.users[c.OwnerID]; ok {
		c.Owner = &entity.CardOwner{ID: owner.ID, Name: owner.Name, Email: owner.Email}
	}
	return &c
}

type userStore struct{ s *store }

func (r *userStore) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.s.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userStore) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, uuid.Nil) {
		return fmt.Errorf("create user %s: %w", user.Email, repository.ErrEmailTaken)
	}
	stored := *user
	stored.CreatedCards, stored.LikedCards = nil, nil
	r.s.users[user.ID] = stored
	return nil
}

func (r *userStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return r.s.hydrateUser(u), nil
}

func (r *userStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return r.s.hydrateUser(u), nil
		}
	}
	return nil, nil
}

func (r *userStore) FindAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, r.s.hydrateUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *userStore) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("update user %s: %w", user.ID.String(), repository.ErrNotFound)
	}
	if r.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("update user %s: %w", user.ID.String(), repository.ErrEmailTaken)
	}

	updated := *user
	updated.IsAdmin = existing.IsAdmin
	updated.CreatedAt = existing.CreatedAt
	updated.CreatedCards, updated.LikedCards = nil, nil
	r.s.users[user.ID] = updated
	return nil
}

func (r *userStore) UpdateBusinessStatus(_ context.Context, id uuid.UUID, isBusiness bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("update business status %s: %w", id.String(), repository.ErrNotFound)
	}
	u.IsBusiness = isBusiness
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return nil
}

func (r *userStore) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("delete user %s: %w", id.String(), repository.ErrNotFound)
	}
	delete(r.s.users, id)
	return nil
}

type cardStore struct{ s *store }

func (r *cardStore) Create(_ context.Context, card *entity.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.cards {
		if c.BizNumber == card.BizNumber {
			return fmt.Errorf("create card: %w", repository.ErrBizNumberTaken)
		}
	}
	stored := *card
	stored.Likes, stored.Owner = nil, nil
	r.s.cards[card.ID] = stored
	return nil
}

func (r *cardStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Card, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cards[id]
	if !ok {
		return nil, nil
	}
	return r.s.hydrateCard(c), nil
}

func (r *cardStore) FindAll(_ context.Context) ([]*entity.Card, error) {
	return r.list(func(entity.Card) bool { return true }), nil
}

func (r *cardStore) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Card, error) {
	return r.list(func(c entity.Card) bool { return c.OwnerID == ownerID }), nil
}

func (r *cardStore) list(keep func(entity.Card) bool) []*entity.Card {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cards := make([]*entity.Card, 0)
	for _, c := range r.s.cards {
		if keep(c) {
			cards = append(cards, r.s.hydrateCard(c))
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt.Before(cards[j].CreatedAt) })
	return cards
}

func (r *cardStore) Update(_ context.Context, card *entity.Card) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.cards[card.ID]
	if !ok {
		return fmt.Errorf("update card %s: %w", card.ID.String(), repository.ErrNotFound)
	}

	updated := *card
	updated.OwnerID = existing.OwnerID
	updated.BizNumber = existing.BizNumber
	updated.CreatedAt = existing.CreatedAt
	updated.Likes, updated.Owner = nil, nil
	r.s.cards[card.ID] = updated
	return nil
}

func (r *cardStore) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards[id]; !ok {
		return fmt.Errorf("delete card %s: %w", id.String(), repository.ErrNotFound)
	}
	delete(r.s.cards, id)
	delete(r.s.likes, id)
	return nil
}

func (r *cardStore) ToggleLike(_ context.Context, cardID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards[cardID]; !ok {
		return false, fmt.Errorf("toggle like on card %s: %w", cardID.String(), repository.ErrNotFound)
	}

	likes := r.s.likes[cardID]
	for i, l := range likes {
		if l.userID == userID {
			r.s.likes[cardID] = append(likes[:i:i], likes[i+1:]...)
			return false, nil
		}
	}
	r.s.likes[cardID] = append(likes, like{userID: userID, at: r.s.now()})
	return true, nil
}
