// internal/app/features/prayers/handler.go
package prayers

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves prayer requests and commitments: the public feed,
// group-scoped requests, and the toggle that tracks who is praying
// for what.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}
