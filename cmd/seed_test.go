package cmd

import (
	"context"
	"testing"
	"time"

	"business-cards/internal/data/entity"
	"business-cards/internal/data/repository/memory"
	"business-cards/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: 4}}

	require.NoError(t, Seed(ctx, repo, config, zap.NewNop()))
	require.NoError(t, Seed(ctx, repo, config, zap.NewNop()))

	users, err := repo.User.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	admin, err := repo.User.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.True(t, utils.CheckPasswordHash("Admin123!", admin.PasswordHash))

	business, err := repo.User.FindByEmail(ctx, "business@example.com")
	require.NoError(t, err)
	assert.Len(t, business.CreatedCards, 3)

	cards, err := repo.Card.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 3)
}

func TestSeed_RetriesTakenBizNumber(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: 4}}

	taken := &entity.Card{Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now()}, OwnerID: uuid.New(), BizNumber: 111111}
	require.NoError(t, repo.Card.Create(ctx, taken))

	draws := []int{111111, 222222, 111111, 333333, 444444}
	prev := bizNumber
	bizNumber = func() int {
		n := draws[0]
		draws = draws[1:]
		return n
	}
	t.Cleanup(func() { bizNumber = prev })

	require.NoError(t, Seed(ctx, repo, config, zap.NewNop()))

	cards, err := repo.Card.FindAll(ctx)
	require.NoError(t, err)
	numbers := make([]int, 0, len(cards))
	for _, c := range cards {
		numbers = append(numbers, c.BizNumber)
	}
	assert.ElementsMatch(t, []int{111111, 222222, 333333, 444444}, numbers)
}

func TestSeed_CompletesPartialRun(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: 4}}

	// users exist but the cards were never written
	require.NoError(t, seedAccounts(ctx, repo, seedUsers(), config))

	require.NoError(t, Seed(ctx, repo, config, zap.NewNop()))

	users, err := repo.User.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	business, err := repo.User.FindByEmail(ctx, "business@example.com")
	require.NoError(t, err)
	assert.Len(t, business.CreatedCards, 3)
}
