// internal/app/features/bible/routes.go
package bible

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/versions", h.HandleVersions)
	r.Get("/{bibleID}/books", h.HandleBooks)
	r.Get("/{bibleID}/chapters/{chapterID}", h.HandleChapter)
	return r
}
