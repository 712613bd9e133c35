package wire

import (
	"net/http"

	"business-cards/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authHandler *adaptor.AuthHandler,
	authToken func(http.Handler) http.Handler,
) {
	r.Route("/api/user", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/getAllUsers", userHandler.GetAllUsers)

		// ==================== TOKEN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authToken)

			r.Get("/getUserById", userHandler.GetUserByID)
			r.Put("/updateUser", userHandler.UpdateUser)
			r.Patch("/updateBusinessStatus", userHandler.UpdateBusinessStatus)
			r.Delete("/deleteUser", userHandler.DeleteUser)
		})
	})
}
