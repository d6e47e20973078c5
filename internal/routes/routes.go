package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideapool/backend/internal/handlers"
)

// Setup wires every route. guard is the access-token middleware applied
// to the protected group.
func Setup(r *chi.Mux, h *handlers.Handler, guard func(http.Handler) http.Handler) {
	r.Get("/", h.Root)

	r.Post("/users", h.Signup)
	r.Post("/access-tokens", h.Login)
	r.Post("/access-tokens/refresh", h.RefreshAccessToken)

	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Delete("/access-tokens", h.Logout)
		r.Get("/me", h.CurrentUser)

		r.Route("/ideas", func(r chi.Router) {
			r.Get("/", h.ListIdeas)
			r.Post("/", h.CreateIdea)
			r.Put("/{id}", h.UpdateIdea)
			r.Delete("/{id}", h.DeleteIdea)
		})
	})
}
