// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	feedbackstore "github.com/upliftapp/uplift/internal/app/store/feedback"
	"github.com/upliftapp/uplift/internal/app/system/httpjson"
	"github.com/upliftapp/uplift/internal/app/system/sanitize"
	"github.com/upliftapp/uplift/internal/app/system/timeouts"
	"github.com/upliftapp/uplift/internal/domain/models"
)

// Handler serves app feedback. Submissions are anonymous; no author
// reference is stored.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type createFeedbackRequest struct {
	Text string `json:"text"`
}

// HandleCreate stores one feedback entry.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createFeedbackRequest
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

	f, err := feedbackstore.New(h.DB).Create(ctx, models.Feedback{Text: text})
	if err != nil {
		httpjson.Internal(w, h.Log, "could not save feedback", err)
		return
	}
	httpjson.Created(w, "feedback submitted", f)
}

// HandleGetAll lists feedback, newest first.
func (h *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := feedbackstore.New(h.DB).ListAll(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not load feedback", err)
		return
	}
	httpjson.OK(w, "feedback retrieved", out)
}
