// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"

	"github.com/upliftapp/uplift/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Discovery reads are public.
	r.Get("/public", h.HandlePublic)
	r.Get("/search", h.HandleSearch)
	r.Get("/get/{id}", h.HandleGet)

	// Everything else needs a local account.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireAccount)

		pr.Post("/create", h.HandleCreate)
		pr.Get("/my-groups", h.HandleMyGroups)
		pr.Delete("/delete/{id}", h.HandleDelete)

		pr.Post("/join/{id}", h.HandleJoin)
		pr.Post("/leave/{id}", h.HandleLeave)
		pr.Get("/members/{id}", h.HandleMembers)
		pr.Post("/make-admin/{id}", h.HandleMakeAdmin)
		pr.Post("/remove-member/{id}", h.HandleRemoveMember)
		pr.Get("/code/{id}", h.HandleCode)
		pr.Put("/update-display-name/{id}", h.HandleUpdateDisplayName)

		pr.Get("/feed/{id}", h.HandleFeed)

		pr.Post("/message/{id}", h.HandlePostMessage)
		pr.Put("/message/{id}/{messageId}", h.HandleUpdateMessage)
		pr.Delete("/message/{id}/{messageId}", h.HandleDeleteMessage)
		pr.Get("/message/top/{id}", h.HandleTopMessage)
		pr.Get("/message/all/{id}", h.HandleAllMessages)
	})

	return r
}
