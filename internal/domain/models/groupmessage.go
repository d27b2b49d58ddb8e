// internal/domain/models/groupmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMessage is an owner/admin-authored announcement inside a group.
// Many messages may exist per group; the "top" message surfaced to
// members is the newest pinned one, falling back to the newest overall.
type GroupMessage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"groupId"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Message  string             `bson:"message" json:"message"`
	IsPinned bool               `bson:"is_pinned" json:"isPinned"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
