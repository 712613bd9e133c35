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
	"business-cards/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgUserNotFound = "User not found"

type UserService interface {
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	UpdateBusinessStatus(ctx context.Context, userID string, req *request.BusinessStatusRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	config   *utils.Config
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		config:   config,
		log:      log.With(zap.String("service", "user")),
	}
}

func parseID(raw, entityName string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid "+entityName+" ID", map[string]string{"id": "must be a valid ID"})
	}
	return id, nil
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list users", err)
	}
	return response.UsersToResponse(users), nil
}

func (us *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}
	if req.IsEmpty() {
		return nil, apperror.Validation("At least one field must be provided", nil)
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := *req.Email
		if email != user.Email {
			other, err := us.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, apperror.Internal("check email", err)
			}
			if other != nil && other.ID != user.ID {
				us.log.Warn("Update to taken email", zap.String("user_id", userID))
				return nil, apperror.Conflict("user", msgEmailExists, nil)
			}
		}
		user.Email = email
	}

	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password, us.config.Security.BcryptCost)
		if err != nil {
			return nil, apperror.Internal("hash password", err)
		}
		user.PasswordHash = hashed
	}

	if req.Name != nil {
		user.Name = nameFromRequest(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = addressFromRequest(*req.Address)
	}
	if req.Image != nil {
		user.Image = imageFromRequest(*req.Image)
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, us.mapStoreError(err, "update user")
	}

	us.log.Info("User updated", zap.String("user_id", userID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateBusinessStatus(ctx context.Context, userID string, req *request.BusinessStatusRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Business status validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation("Validation failed", errs)
	}

	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := us.userRepo.UpdateBusinessStatus(ctx, user.ID, *req.IsBusiness); err != nil {
		return nil, us.mapStoreError(err, "update business status")
	}

	us.log.Info("Business status changed",
		zap.String("user_id", userID),
		zap.Bool("is_business", *req.IsBusiness))

	return us.GetUserByID(ctx, userID)
}

// DeleteUser removes only the user record. Cards and likes stay.
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseID(userID, "user")
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		return us.mapStoreError(err, "delete user")
	}

	us.log.Info("User deleted", zap.String("user_id", userID))
	return nil
}

func (us *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", msgUserNotFound)
	}
	return user, nil
}

func (us *userService) mapStoreError(err error, operation string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("user", msgUserNotFound)
	case errors.Is(err, repository.ErrEmailTaken):
		return apperror.Conflict("user", msgEmailExists, err)
	default:
		return apperror.Internal(operation, err)
	}
}
