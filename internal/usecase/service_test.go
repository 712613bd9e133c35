package usecase

import (
	"context"
	"testing"
	"time"

	"business-cards/internal/data/repository"
	"business-cards/internal/data/repository/memory"
	"business-cards/internal/dto/request"
	"business-cards/internal/dto/response"
	"business-cards/pkg/apperror"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc    *Service
	repo   *repository.Repository
	tokens *token.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	repo := memory.NewRepository()
	config := &utils.Config{Security: utils.SecurityConfig{BcryptCost: 4}}
	return &fixture{
		svc:    NewService(repo, tokens, config, zap.NewNop()),
		repo:   repo,
		tokens: tokens,
	}
}

func registerRequest(email string, business bool) *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:     request.NameRequest{First: "Dana", Last: "Levi"},
		Email:    email,
		Password: "Abc123!",
		Phone:    "0501234567",
		Address: request.AddressRequest{
			Country: "Israel", City: "Haifa", Street: "Herzl", HouseNumber: 5, Zip: "3303139",
		},
		Image:      request.ImageRequest{URL: "https://example.com/a.png", Alt: "avatar"},
		IsBusiness: business,
	}
}

func (f *fixture) register(t *testing.T, email string, business bool) *response.AuthResponse {
	t.Helper()
	resp, err := f.svc.Auth.Register(context.Background(), registerRequest(email, business))
	require.NoError(t, err)
	return resp
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperror.KindOf(err), err.Error())
}
