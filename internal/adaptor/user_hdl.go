package adaptor

import (
	"net/http"

	"business-cards/internal/dto/request"
	"business-cards/internal/usecase"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// callerID returns the authenticated user id, answering 401 itself if absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access denied token is required")
		return "", false
	}
	return userID.String(), true
}

// GetAllUsers handles GET /api/user/getAllUsers (public)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all users")
		return
	}

	utils.ResponseList(w, users, len(users))
}

// GetUserByID handles GET /api/user/getUserById for the caller
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user by ID")
		return
	}

	utils.ResponseSuccess(w, user)
}

// UpdateUser handles PUT /api/user/updateUser
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// UpdateBusinessStatus handles PATCH /api/user/updateBusinessStatus
func (h *UserHandler) UpdateBusinessStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.BusinessStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateBusinessStatus(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update business status")
		return
	}

	utils.ResponseSuccess(w, user)
}

// DeleteUser handles DELETE /api/user/deleteUser
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseMessage(w, "User deleted successfully")
}
