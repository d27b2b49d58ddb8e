// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/upliftapp/uplift/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/get", h.HandleGet)
	r.Post("/create", h.HandleCreate)
	r.Put("/update", h.HandleUpdate)

	return r
}
