// internal/app/policy/grouppolicy.go
package grouppolicy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upliftapp/uplift/internal/domain/models"
)

// IsMember reports whether the user belongs to the group according to
// the authoritative group_members collection.
func IsMember(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("group_members").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsAdmin reports whether the user holds an admin membership in the
// group. The owner's seeded membership is admin, so this covers owners
// too unless the role was changed by hand in the database.
func IsAdmin(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("group_members").CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"role":     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsOwner reports whether the user is the group's owner. Ownership is
// decided by the owner reference on the group document, never by the
// membership role.
func IsOwner(g models.Group, userID primitive.ObjectID) bool {
	return g.OwnerID == userID
}

// IsOwnerOrAdmin reports whether the user may manage the group's
// announcements and roster. The owner reference is checked first so a
// missing or downgraded owner membership can't lock the owner out.
func IsOwnerOrAdmin(ctx context.Context, db *mongo.Database, g models.Group, userID primitive.ObjectID) (bool, error) {
	if IsOwner(g, userID) {
		return true, nil
	}
	return IsAdmin(ctx, db, g.ID, userID)
}
