// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a local account shadowing an identity-provider user.
//
// NOTE:
//   - StytchID is the provider-issued identifier and is unique.
//   - Records are created lazily on first authenticated contact;
//     nothing in the service ever deletes one.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StytchID  string             `bson:"stytch_id" json:"stytchId"`
	FirstName string             `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string             `bson:"last_name,omitempty" json:"lastName,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
