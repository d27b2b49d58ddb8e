// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/upliftapp/uplift/internal/app/store/groups"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/domain/models"
)

// Handler serves group lifecycle, membership, and announcement
// endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func objectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// loadGroup fetches the group or writes the 404/500 itself.
func (h *Handler) loadGroup(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID) (models.Group, bool) {
	g, err := groupstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "group not found")
			return models.Group{}, false
		}
		httpjson.Internal(w, h.Log, "could not load group", err)
		return models.Group{}, false
	}
	return g, true
}
