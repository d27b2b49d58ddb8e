// internal/app/features/prayers/commitments.go
package prayers

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	commitmentstore "github.com/upliftapp/uplift/internal/app/store/commitments"
	prayerstore "github.com/upliftapp/uplift/internal/app/store/prayers"
	"github.com/upliftapp/uplift/internal/app/store/queries/prayerfeed"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
)

type commitState struct {
	Committed   bool  `json:"committed"`
	PrayerCount int64 `json:"prayerCount"`
}

// HandleToggleCommit flips the caller's commitment on a request and
// returns the new state with the updated count.
func (h *Handler) HandleToggleCommit(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	reqID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	requests := prayerstore.New(h.DB)
	if _, err := requests.GetByID(ctx, reqID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "prayer request not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not load prayer request", err)
		return
	}

	committed, err := commitmentstore.New(h.DB).Toggle(ctx, reqID, *id.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "prayer request not found")
			return
		}
		httpjson.Internal(w, h.Log, "could not update commitment", err)
		return
	}

	pr, err := requests.GetByID(ctx, reqID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not load prayer request", err)
		return
	}
	httpjson.OK(w, "commitment updated", commitState{
		Committed:   committed,
		PrayerCount: pr.PrayerCount,
	})
}

// HandleCheckCommit reports whether the caller has committed to the
// request.
func (h *Handler) HandleCheckCommit(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)
	reqID, ok := objectIDParam(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	committed, err := commitmentstore.New(h.DB).HasCommitted(ctx, reqID, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not check commitment", err)
		return
	}
	httpjson.OK(w, "commitment checked", map[string]bool{"committed": committed})
}

// HandleMyPrayerList returns the requests the caller has committed to,
// most recent commitment first.
func (h *Handler) HandleMyPrayerList(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.Current(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	views, err := prayerfeed.Committed(ctx, h.DB, *id.UserID)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not load prayer list", err)
		return
	}
	httpjson.OK(w, "prayer list retrieved", views)
}
