// internal/app/features/users/handler.go
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the account endpoints. Accounts are thin shadows of
// the identity provider's users: created on first sign-in, never
// deleted.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}
