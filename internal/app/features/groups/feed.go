// internal/app/features/groups/feed.go
package groups

import (
	"context"
	"net/http"

	"github.com/upliftapp/uplift/internal/app/store/queries/prayerfeed"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
)

// HandleFeed returns the group's prayer requests, newest first, with
// authors resolved. Members only; non-members read as not-found.
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, ok := h.loadGroup(ctx, w, groupID); !ok {
		return
	}
	if !h.requireMember(ctx, w, groupID, *id.UserID) {
		return
	}

	views, err := prayerfeed.ForGroup(ctx, h.DB, groupID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not load group feed", err)
		return
	}
	httpjson.OK(w, "group feed retrieved", views)
}
