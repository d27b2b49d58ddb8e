// internal/app/features/prayers/routes.go
package prayers

import (
	"github.com/go-chi/chi/v5"

	"github.com/upliftapp/uplift/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads. Group-scoped requests are still member-gated
	// inside HandleGet.
	r.Get("/get-all", h.HandleGetAll)
	r.Get("/get/{id}", h.HandleGet)

	// Everything else operates on user-owned data.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAccount)

		pr.Post("/create", h.HandleCreate)
		pr.Delete("/delete/{id}", h.HandleDelete)
		pr.Post("/toggle-commit/{id}", h.HandleToggleCommit)
		pr.Get("/check-commit/{id}", h.HandleCheckCommit)
		pr.Get("/my-prayer-list", h.HandleMyPrayerList)
	})

	return r
}
