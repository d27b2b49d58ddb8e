package userstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/app/system/timeouts"
)

// Fetcher implements auth.UserResolver: it maps a provider identity to
// the local account ID on each request, so handlers always see the
// current state rather than anything cached at verification time.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a resolver that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// Resolve returns the local user ID for a provider identity, or nil if
// no account exists yet. Accounts are created lazily by the user
// feature, so nil is a normal state, not an error.
func (f *Fetcher) Resolve(ctx context.Context, stytchID string) *primitive.ObjectID {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	proj := options.FindOne().SetProjection(bson.M{"_id": 1})
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := f.users.FindOne(ctx, bson.M{"stytch_id": stytchID}, proj).Decode(&doc); err != nil {
		return nil
	}
	return &doc.ID
}
