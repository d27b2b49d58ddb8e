// internal/app/features/prayers/requests.go
package prayers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upliftapp/uplift/internal/app/policy/grouppolicy"
	groupstore "github.com/upliftapp/uplift/internal/app/store/groups"
	prayerstore "github.com/upliftapp/uplift/internal/app/store/prayers"
	"github.com/upliftapp/uplift/internal/app/store/queries/prayerfeed"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

type createRequest struct {
	Text        string  `json:"text"`
	IsAnonymous bool    `json:"isAnonymous"`
	GroupID     *string `json:"groupId"`
	IsGroupOnly *bool   `json:"isGroupOnly"`
}

// HandleCreate creates a prayer request, public or group-scoped. A
// group-scoped request requires membership in the target group.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	var req createRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	text := sanitize.Text(req.Text)
	if text == "" {
		httpjson.BadRequest(w, "text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pr := models.PrayerRequest{
		Text:        text,
		UserID:      id.UserID,
		IsAnonymous: req.IsAnonymous,
	}

	if req.GroupID != nil && *req.GroupID != "" {
		groupID, err := primitive.ObjectIDFromHex(*req.GroupID)
		if err != nil {
			httpjson.BadRequest(w, "invalid group id")
			return
		}
		if _, err := groupstore.New(h.DB).GetByID(ctx, groupID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				httpjson.NotFound(w, "group not found")
				return
			}
			httpjson.Internal(w, h.Log, "could not load group", err)
			return
		}
		member, err := grouppolicy.IsMember(ctx, h.DB, groupID, *id.UserID)
		if err != nil {
			httpjson.Internal(w, h.Log, "could not check membership", err)
			return
		}
		if !member {
			httpjson.NotFound(w, "you are not a member of this group")
			return
		}
		pr.GroupID = &groupID
		// Group requests default to group-only visibility unless the
		// author explicitly opens them up.
		pr.IsGroupOnly = req.IsGroupOnly == nil || *req.IsGroupOnly
	}

	created, err := prayerstore.New(h.DB).Create(ctx, pr)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not create prayer request", err)
		return
	}
	httpjson.Created(w, "prayer request created", created)
}

// HandleGetAll returns the public feed, newest first.
func (h *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := prayerfeed.Public(ctx, h.DB)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not load prayer requests", err)
		return
	}
	httpjson.OK(w, "prayer requests retrieved", views)
}

// HandleGet returns a single request. Group-only requests are only
// visible to members of their group; everyone else sees a 404. A group
// request the author opened up (isGroupOnly=false) reads like a public
// one.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	reqID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	view, err := prayerfeed.One(ctx, h.DB, reqID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "prayer request not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not load prayer request", err)
		return
	}

	if view.GroupID != nil && view.IsGroupOnly {
		id, ok := auth.Current(r)
		if !ok || id.UserID == nil {
			httpjson.NotFound(w, "prayer request not found")
			return
		}
		member, err := grouppolicy.IsMember(ctx, h.DB, *view.GroupID, *id.UserID)
		if err != nil {
			httpjson.Internal(w, h.Log, "could not check membership", err)
			return
		}
		if !member {
			httpjson.NotFound(w, "prayer request not found")
			return
		}
	}
	httpjson.OK(w, "prayer request retrieved", view)
}

// HandleDelete removes the caller's own request along with its
// commitments. Requests by other authors look like they don't exist.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	reqID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deleted, err := prayerstore.New(h.DB).DeleteOwned(ctx, reqID, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not delete prayer request", err)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "prayer request not found")
		return
	}
	httpjson.OK(w, "prayer request deleted", nil)
}

func objectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return oid, true
}
