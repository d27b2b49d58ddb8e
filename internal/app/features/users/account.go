// internal/app/features/users/account.go
package users

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/upliftapp/uplift/internal/app/store/users"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

// HandleGet returns the caller's account.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByStytchID(ctx, id.StytchID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not load user", err)
		return
	}
	httpjson.OK(w, "user retrieved", u)
}

type createUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HandleCreate creates the local account for the caller's identity.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	var req createUserRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.Create(ctx, models.User{
		StytchID:  id.StytchID,
		FirstName: sanitize.Text(req.FirstName),
		LastName:  sanitize.Text(req.LastName),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateUser) {
			// Hand back the existing record so a retried first sign-in
			// still leaves the client with an account.
			if existing, gerr := store.GetByStytchID(ctx, id.StytchID); gerr == nil {
				httpjson.ConflictWithData(w, "user already exists", existing)
				return
			}
			httpjson.Conflict(w, "user already exists")
			return
		}
		httpjson.Internal(w, h.Log, "could not create user", err)
		return
	}
	httpjson.Created(w, "user created", u)
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// HandleUpdate updates the caller's name fields. Absent fields keep
// their stored values.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	var req updateUserRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.FirstName != nil {
		clean := sanitize.Text(*req.FirstName)
		req.FirstName = &clean
	}
	if req.LastName != nil {
		clean := sanitize.Text(*req.LastName)
		req.LastName = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := userstore.New(h.DB).UpdateName(ctx, id.StytchID, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not update user", err)
		return
	}
	httpjson.OK(w, "user updated", u)
}
