// Package indexes declares the MongoDB indexes the application relies
// on. EnsureAll is idempotent and runs at startup before the HTTP
// handler is built.
//
// The unique indexes here are load-bearing, not advisory:
//   - users.stytch_id backs lazy account creation
//   - group_members (group_id, user_id) makes join idempotent
//   - prayer_commitments (prayer_request_id, user_id) is what keeps the
//     commitment toggle correct under concurrent requests
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates every index the service needs. Safe to call on
// every startup; Mongo treats re-creation of an identical index as a
// no-op.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, e := range []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{"users", userIndexes()},
		{"groups", groupIndexes()},
		{"group_members", memberIndexes()},
		{"group_messages", messageIndexes()},
		{"prayer_requests", prayerRequestIndexes()},
		{"prayer_commitments", commitmentIndexes()},
		{"prayer_request_reports", reportIndexes()},
		{"feedback", feedbackIndexes()},
	} {
		if _, err := db.Collection(e.collection).Indexes().CreateMany(ctx, e.models); err != nil {
			logger.Error("index creation failed",
				zap.String("collection", e.collection), zap.Error(err))
			return err
		}
	}
	logger.Info("indexes ensured")
	return nil
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "stytch_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func groupIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		// Join-code lookup. Deliberately not unique: codes are random
		// and collision-checked at generation time only.
		{Keys: bson.D{{Key: "code", Value: 1}}},
		{Keys: bson.D{{Key: "is_public", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "name_ci", Value: 1}}},
	}
}

func memberIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "joined_at", Value: -1}}},
	}
}

func messageIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "is_pinned", Value: -1}, {Key: "created_at", Value: -1}}},
	}
}

func prayerRequestIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

func commitmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "prayer_request_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
}

func reportIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "prayer_request_id", Value: 1}, {Key: "reported_by", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func feedbackIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}
