// internal/app/features/groups/messages.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upliftapp/uplift/internal/app/policy/grouppolicy"
	messagestore "github.com/upliftapp/uplift/internal/app/store/messages"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

type messageRequest struct {
	Message  string `json:"message"`
	IsPinned bool   `json:"isPinned"`
}

// HandlePostMessage posts an announcement to the group. Owner or
// admin.
func (h *Handler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	var req messageRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	text := sanitize.Text(req.Message)
	if text == "" {
		httpjson.BadRequest(w, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if !h.requireOwnerOrAdmin(ctx, w, g, *id.UserID) {
		return
	}

	m, err := messagestore.New(h.DB).Create(ctx, models.GroupMessage{
		GroupID:  groupID,
		UserID:   *id.UserID,
		Message:  text,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		httpjson.Internal(w, h.Log, "could not post message", err)
		return
	}
	httpjson.Created(w, "message posted", m)
}

// HandleUpdateMessage edits an announcement. Owner or admin of the
// message's group; the URL group must match the message's group.
func (h *Handler) HandleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	messageID, ok := objectIDParam(w, r, "messageId")
	if !ok {
		return
	}

	var req messageRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	text := sanitize.Text(req.Message)
	if text == "" {
		httpjson.BadRequest(w, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if !h.requireOwnerOrAdmin(ctx, w, g, *id.UserID) {
		return
	}

	store := messagestore.New(h.DB)
	existing, err := store.GetByID(ctx, messageID)
	if err != nil || existing.GroupID != groupID {
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Internal(w, h.Log, "could not load message", err)
			return
		}
		httpjson.NotFound(w, "message not found")
		return
	}

	m, err := store.Update(ctx, messageID, text, req.IsPinned)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "message not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not update message", err)
		return
	}
	httpjson.OK(w, "message updated", m)
}

// HandleDeleteMessage removes an announcement. Owner or admin.
func (h *Handler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}
	messageID, ok := objectIDParam(w, r, "messageId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, ok := h.loadGroup(ctx, w, groupID)
	if !ok {
		return
	}
	if !h.requireOwnerOrAdmin(ctx, w, g, *id.UserID) {
		return
	}

	store := messagestore.New(h.DB)
	existing, err := store.GetByID(ctx, messageID)
	if err != nil || existing.GroupID != groupID {
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Internal(w, h.Log, "could not load message", err)
			return
		}
		httpjson.NotFound(w, "message not found")
		return
	}

	if _, err := store.Delete(ctx, messageID); err != nil {
		httpjson.Internal(w, h.Log, "could not delete message", err)
		return
	}
	httpjson.OK(w, "message deleted", nil)
}

// HandleTopMessage returns the announcement surfaced to members: the
// newest pinned one, else the newest overall, else null. Members only.
func (h *Handler) HandleTopMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	groupID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.requireMember(ctx, w, groupID, *id.UserID) {
		return
	}

	m, err := messagestore.New(h.DB).Top(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.OK(w, "no messages", nil)
			return
		}
		httpjson.Internal(w, h.Log, "could not load message", err)
		return
	}
	httpjson.OK(w, "message retrieved", m)
}

// HandleAllMessages returns every announcement, pinned block first.
// Members only.
func (h *Handler) HandleAllMessages(w http.ResponseWriter, r *http.Request) {
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

	out, err := messagestore.New(h.DB).ListByGroup(ctx, groupID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not list messages", err)
		return
	}
	httpjson.OK(w, "messages retrieved", out)
}

// requireOwnerOrAdmin writes a 403 unless the user may manage the
// group.
func (h *Handler) requireOwnerOrAdmin(ctx context.Context, w http.ResponseWriter, g models.Group, userID primitive.ObjectID) bool {
	allowed, err := grouppolicy.IsOwnerOrAdmin(ctx, h.DB, g, userID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check permissions", err)
		return false
	}
	if !allowed {
		httpjson.Forbidden(w, "only the owner or an admin can manage messages")
		return false
	}
	return true
}
