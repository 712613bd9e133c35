package usecase

import (
	"context"
	"errors"
	"time"

	"business-cards/internal/data/entity"
	"business-cards/internal/data/repository"
	"business-cards/internal/dto/request"
	"business-cards/internal/dto/response"
	"business-cards/pkg/apperror"
	"business-cards/pkg/token"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid email or password"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens TokenIssuer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens TokenIssuer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	email := req.Email

	// 2. Email must be free
	existingUser, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("check email", err)
	}
	if existingUser != nil {
		s.log.Warn("Register with existing email", zap.String("email", email))
		return nil, apperror.Conflict("user", msgEmailExists, nil)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	// 4. Persist, never as admin
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         nameFromRequest(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Address:      addressFromRequest(req.Address),
		Image:        imageFromRequest(req.Image),
		IsBusiness:   req.IsBusiness,
		IsAdmin:      false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// lost a race with a concurrent register
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperror.Conflict("user", msgEmailExists, err)
		}
		return nil, apperror.Internal("create user", err)
	}

	// 5. Issue token
	resp, err := s.authResponse(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_business", user.IsBusiness))

	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	email := req.Email

	// 2. Unknown email and wrong password answer the same way
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", email))
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	// 3. Issue token
	resp, err := s.authResponse(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return resp, nil
}

func (s *authService) authResponse(user *entity.User) (*response.AuthResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(token.Identity{
		UserID:     user.ID,
		IsBusiness: user.IsBusiness,
		IsAdmin:    user.IsAdmin,
	})
	if err != nil {
		return nil, apperror.Internal("issue token", err)
	}

	resp := response.AuthToResponse(user, signed, expiresAt)
	return &resp, nil
}

func nameFromRequest(n request.NameRequest) entity.Name {
	return entity.Name{First: n.First, Middle: n.Middle, Last: n.Last}
}

func addressFromRequest(a request.AddressRequest) entity.Address {
	return entity.Address{
		State:       a.State,
		Country:     a.Country,
		City:        a.City,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		Zip:         a.Zip,
	}
}

func imageFromRequest(i request.ImageRequest) entity.Image {
	return entity.Image{URL: i.URL, Alt: i.Alt}
}
