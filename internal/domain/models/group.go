// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a prayer community with a join code and an owner.
//
// NOTE:
//   - The roster is not embedded here; membership lives in the
//     group_members collection. The owner holds a seeded admin
//     membership but owner-level authority is decided by OwnerID.
//   - Code is stored normalized (uppercase). Collision avoidance is
//     best-effort at generation time; there is no unique index on it.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Code        string             `bson:"code" json:"-"`
	IsPublic    bool               `bson:"is_public" json:"isPublic"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"ownerId"`
	DisplayName string             `bson:"display_name,omitempty" json:"displayName,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
