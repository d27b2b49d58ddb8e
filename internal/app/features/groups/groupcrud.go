// internal/app/features/groups/groupcrud.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/upliftapp/uplift/internal/app/policy/grouppolicy"
	groupstore "github.com/upliftapp/uplift/internal/app/store/groups"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// HandleCreate creates a group owned by the caller. The store seeds
// the owner's admin membership and generates the join code.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	var req createGroupRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	name := sanitize.Text(req.Name)
	if name == "" {
		httpjson.BadRequest(w, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Name:        name,
		Description: sanitize.Text(req.Description),
		IsPublic:    req.IsPublic,
		OwnerID:     *id.UserID,
	})
	if err != nil {
		if errors.Is(err, groupstore.ErrDuplicateGroupName) {
			httpjson.Conflict(w, "a group with this name already exists")
			return
		}
		httpjson.Internal(w, h.Log, "could not create group", err)
		return
	}
	httpjson.Created(w, "group created", g)
}

// HandleSearch returns groups of any visibility whose name contains
// the q parameter, case-insensitively. Join codes never serialize, so
// listing a private group here reveals only its existence.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		httpjson.BadRequest(w, "q is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := groupstore.New(h.DB).Search(ctx, term)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not search groups", err)
		return
	}
	httpjson.OK(w, "groups retrieved", out)
}

// HandlePublic lists publicly visible groups, newest first.
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := groupstore.New(h.DB).ListPublic(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not list groups", err)
		return
	}
	httpjson.OK(w, "groups retrieved", out)
}

// HandleGet returns one group by ID.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	httpjson.OK(w, "group retrieved", g)
}

// HandleMyGroups lists the caller's groups, most recently joined first.
func (h *Handler) HandleMyGroups(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := groupstore.New(h.DB).ListForUser(ctx, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not list groups", err)
		return
	}
	httpjson.OK(w, "groups retrieved", out)
}

// HandleDelete deletes a group. Owner only; takes memberships and the
// group's prayer requests with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if !grouppolicy.IsOwner(g, *id.UserID) {
		httpjson.Forbidden(w, "only the owner can delete this group")
		return
	}

	if _, err := groupstore.New(h.DB).DeleteCascade(ctx, groupID); err != nil {
		httpjson.Internal(w, h.Log, "could not delete group", err)
		return
	}
	httpjson.OK(w, "group deleted", nil)
}
