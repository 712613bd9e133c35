package wire

import (
	"net/http"

	"business-cards/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCard(
	r chi.Router,
	cardHandler *adaptor.CardHandler,
	authToken func(http.Handler) http.Handler,
	requireBusiness func(http.Handler) http.Handler,
) {
	r.Route("/api/card", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/cards", cardHandler.GetAllCards)

		// ==================== TOKEN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(authToken)

			r.Get("/my-cards", cardHandler.GetMyCards)
			r.Get("/card/{id}", cardHandler.GetCardByID)
			r.Put("/card/{id}", cardHandler.UpdateCard)
			r.Patch("/card/{id}/like", cardHandler.ToggleLike)
			r.Delete("/card/{id}", cardHandler.DeleteCard)

			// Chain: AuthToken -> RequireBusiness
			r.With(requireBusiness).Post("/addcard", cardHandler.CreateCard)
		})
	})
}
