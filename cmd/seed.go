package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"business-cards/internal/data/entity"
	"business-cards/internal/data/repository"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

type seedUser struct {
	user     entity.User
	password string
}

const seedImage = "https://picsum.photos/200/300"

func seedUsers() []seedUser {
	return []seedUser{
		{
			password: "Admin123!",
			user: entity.User{
				Name:    entity.Name{First: "Admin", Middle: "System", Last: "User"},
				Email:   "admin@example.com",
				Phone:   "0521234567",
				Address: entity.Address{State: "Tel Aviv", Country: "Israel", City: "Tel Aviv", Street: "Rothschild", HouseNumber: 10, Zip: "6380101"},
				Image:   entity.Image{URL: seedImage, Alt: "Admin user profile image"},
				IsAdmin: true,
			},
		},
		{
			password: "User123!",
			user: entity.User{
				Name:    entity.Name{First: "Regular", Middle: "App", Last: "User"},
				Email:   "user@example.com",
				Phone:   "0529876543",
				Address: entity.Address{State: "Jerusalem", Country: "Israel", City: "Jerusalem", Street: "Jaffa", HouseNumber: 20, Zip: "9414107"},
				Image:   entity.Image{URL: seedImage, Alt: "Regular user profile image"},
			},
		},
		{
			password: "Business123!",
			user: entity.User{
				Name:       entity.Name{First: "Business", Middle: "Card", Last: "Owner"},
				Email:      "business@example.com",
				Phone:      "0523456789",
				Address:    entity.Address{State: "Haifa", Country: "Israel", City: "Haifa", Street: "HaNassi", HouseNumber: 30, Zip: "3303139"},
				Image:      entity.Image{URL: seedImage, Alt: "Business user profile image"},
				IsBusiness: true,
			},
		},
	}
}

func seedCards() []entity.Card {
	address := entity.Address{Country: "Israel", City: "Haifa", Street: "HaNassi", HouseNumber: 30, Zip: "3303139"}
	card := func(title, subtitle, description, email, web, alt string) entity.Card {
		return entity.Card{
			Title:       title,
			Subtitle:    subtitle,
			Description: description,
			Phone:       "0523456789",
			Email:       email,
			Web:         &web,
			Image:       entity.Image{URL: seedImage, Alt: alt},
			Address:     address,
		}
	}

	return []entity.Card{
		card("Web Development Services", "Professional websites and web applications",
			"Full-stack web development services including front-end, back-end, and database design.",
			"webdev@example.com", "https://webdev-services.com", "Web development services"),
		card("Mobile App Development", "iOS and Android applications",
			"Custom mobile application development for iOS and Android platforms with cross-platform frameworks.",
			"mobiledev@example.com", "https://mobiledev-services.com", "Mobile app development"),
		card("Digital Marketing Agency", "Boost your online presence",
			"Comprehensive digital marketing services including SEO, social media marketing, content creation, and PPC advertising campaigns.",
			"marketing@example.com", "https://digital-marketing-agency.com", "Digital marketing services"),
	}
}

const seedBizNumberAttempts = 5

// Seed creates the sample admin, regular and business users, then the cards
// of the business user. Users are skipped when the admin account exists and
// cards are skipped when the business user already owns some, so a run that
// stopped halfway is completed by the next one.
func Seed(ctx context.Context, repo *repository.Repository, config *utils.Config, logger *zap.Logger) error {
	users := seedUsers()

	existing, err := repo.User.FindByEmail(ctx, users[0].user.Email)
	if err != nil {
		return fmt.Errorf("check seed admin: %w", err)
	}
	if existing == nil {
		if err := seedAccounts(ctx, repo, users, config); err != nil {
			return err
		}
		logger.Info("Seed users created", zap.Int("users", len(users)))
	}

	owner, err := repo.User.FindByEmail(ctx, users[len(users)-1].user.Email)
	if err != nil {
		return fmt.Errorf("find seed business user: %w", err)
	}
	if owner == nil {
		return fmt.Errorf("seed business user %s is missing", users[len(users)-1].user.Email)
	}
	if len(owner.CreatedCards) > 0 {
		logger.Info("Seed data already present, skipping")
		return nil
	}

	cards := seedCards()
	for i := range cards {
		if err := createSeedCard(ctx, repo, &cards[i], owner); err != nil {
			return err
		}
	}

	logger.Info("Seed cards created", zap.Int("cards", len(cards)))
	return nil
}

func seedAccounts(ctx context.Context, repo *repository.Repository, users []seedUser, config *utils.Config) error {
	for i := range users {
		u := &users[i].user
		hash, err := utils.HashPassword(users[i].password, config.Security.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}

		now := time.Now()
		u.Base = entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now}
		u.PasswordHash = hash

		if err := repo.User.Create(ctx, u); err != nil {
			return fmt.Errorf("create seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

// createSeedCard draws a fresh biz number when the previous one is taken.
func createSeedCard(ctx context.Context, repo *repository.Repository, card *entity.Card, owner *entity.User) error {
	now := time.Now()
	card.Base = entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now}
	card.OwnerID = owner.ID

	var err error
	for range seedBizNumberAttempts {
		card.BizNumber = bizNumber()
		err = repo.Card.Create(ctx, card)
		if !errors.Is(err, repository.ErrBizNumberTaken) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("create seed card %q: %w", card.Title, err)
	}
	return nil
}

// bizNumber is swapped in tests.
var bizNumber = utils.GenerateBizNumber
