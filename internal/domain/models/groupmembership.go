// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// GroupMembership is the authoritative join between users and groups.
// Exactly one document per (group_id, user_id); role is "member" or "admin".
type GroupMembership struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"groupId"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Role     string             `bson:"role" json:"role"`
	JoinedAt time.Time          `bson:"joined_at" json:"joinedAt"`
}
