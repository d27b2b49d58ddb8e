// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/upliftapp/uplift/internal/app/policy/grouppolicy"
	groupstore "github.com/upliftapp/uplift/internal/app/store/groups"
	membershipstore "github.com/upliftapp/uplift/internal/app/store/memberships"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/joincode"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

type joinRequest struct {
	Code string `json:"code"`
}

// HandleJoin adds the caller to a group. Private groups require the
// join code; comparison is case-insensitive on the trimmed input.
// Public groups join without one, and the body may be omitted.
// An existing membership conflicts before the code is even looked at.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var req joinRequest
	if !httpjson.DecodeOptional(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}

	members := membershipstore.New(h.DB)
	already, err := members.Exists(ctx, groupID, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check membership", err)
		return
	}
	if already {
		httpjson.Conflict(w, "you are already a member of this group")
		return
	}

	if !g.IsPublic && joincode.Normalize(req.Code) != g.Code {
		httpjson.BadRequest(w, "invalid join code")
		return
	}

	m, err := members.Add(ctx, groupID, *id.UserID, models.RoleMember)
	if err != nil {
		if errors.Is(err, membershipstore.ErrDuplicateMembership) {
			httpjson.Conflict(w, "you are already a member of this group")
			return
		}
		httpjson.Internal(w, h.Log, "could not join group", err)
		return
	}
	httpjson.OK(w, "group joined", m)
}

// HandleLeave removes the caller's membership. The owner cannot leave;
// owners delete the group instead.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if grouppolicy.IsOwner(g, *id.UserID) {
		httpjson.BadRequest(w, "the owner cannot leave the group; delete it instead")
		return
	}

	deleted, err := membershipstore.New(h.DB).Remove(ctx, groupID, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not leave group", err)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "you are not a member of this group")
		return
	}
	httpjson.OK(w, "group left", nil)
}

// HandleMembers returns the roster, admins first. Members only.
func (h *Handler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.requireMember(ctx, w, groupID, *id.UserID) {
		return
	}

	members, err := membershipstore.New(h.DB).ListByGroup(ctx, groupID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not list members", err)
		return
	}
	httpjson.OK(w, "members retrieved", members)
}

type memberTarget struct {
	UserID string `json:"userId"`
}

// HandleMakeAdmin promotes a member to admin. Owner only.
func (h *Handler) HandleMakeAdmin(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var req memberTarget
	if !httpjson.Decode(w, r, &req) {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if !grouppolicy.IsOwner(g, *id.UserID) {
		httpjson.Forbidden(w, "only the owner can promote members")
		return
	}

	matched, err := membershipstore.New(h.DB).SetRole(ctx, groupID, targetID, models.RoleAdmin)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not promote member", err)
		return
	}
	if matched == 0 {
		httpjson.NotFound(w, "user is not a member of this group")
		return
	}
	httpjson.OK(w, "member promoted to admin", nil)
}

// HandleRemoveMember removes another member. Owner or admin; nobody
// removes the owner.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var req memberTarget
	if !httpjson.Decode(w, r, &req) {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	allowed, err := grouppolicy.IsOwnerOrAdmin(ctx, h.DB, g, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check permissions", err)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the owner or an admin can remove members")
		return
	}
	if targetID == g.OwnerID {
		httpjson.BadRequest(w, "the owner cannot be removed from the group")
		return
	}

	deleted, err := membershipstore.New(h.DB).Remove(ctx, groupID, targetID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not remove member", err)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "user is not a member of this group")
		return
	}
	httpjson.OK(w, "member removed", nil)
}

// HandleCode returns the join code. Owner only; the code is what
// gates entry to private groups.
func (h *Handler) HandleCode(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
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
	if !grouppolicy.IsOwner(g, *id.UserID) {
		httpjson.Forbidden(w, "only the owner can view the join code")
		return
	}
	httpjson.OK(w, "join code retrieved", map[string]string{"code": g.Code})
}

type displayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// HandleUpdateDisplayName sets the group's display name. Owner or
// admin.
func (h *Handler) HandleUpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var req displayNameRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	allowed, err := grouppolicy.IsOwnerOrAdmin(ctx, h.DB, g, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check permissions", err)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the owner or an admin can update the group")
		return
	}

	updated, err := groupstore.New(h.DB).UpdateDisplayName(ctx, groupID, sanitize.Text(req.DisplayName))
	if err != nil {
		httpjson.Internal(w, h.Log, "could not update group", err)
		return
	}
	httpjson.OK(w, "group updated", updated)
}

// requireMember writes a 404 unless the user belongs to the group.
// Membership failures read as not-found so non-members can't probe
// private groups.
func (h *Handler) requireMember(ctx context.Context, w http.ResponseWriter, groupID, userID primitive.ObjectID) bool {
	member, err := grouppolicy.IsMember(ctx, h.DB, groupID, userID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check membership", err)
		return false
	}
	if !member {
		httpjson.NotFound(w, "you are not a member of this group")
		return false
	}
	return true
}
