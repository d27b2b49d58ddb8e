// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_messages")}
}

func (s *Store) Create(ctx context.Context, m models.GroupMessage) (models.GroupMessage, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.GroupMessage{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupMessage, error) {
	var m models.GroupMessage
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.GroupMessage{}, err
	}
	return m, nil
}

// Update sets the message text and pin flag, returning the updated
// document or mongo.ErrNoDocuments.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, message string, isPinned bool) (models.GroupMessage, error) {
	set := bson.M{
		"message":    message,
		"is_pinned":  isPinned,
		"updated_at": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.GroupMessage
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		return models.GroupMessage{}, err
	}
	return m, nil
}

// Delete removes one message. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Top returns the message surfaced to members: the newest pinned one,
// or the newest overall when nothing is pinned. Returns
// mongo.ErrNoDocuments when the group has no messages at all.
func (s *Store) Top(ctx context.Context, groupID primitive.ObjectID) (models.GroupMessage, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var m models.GroupMessage
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "is_pinned": true}, opts).Decode(&m)
	if err == nil {
		return m, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.GroupMessage{}, err
	}

	if err := s.c.FindOne(ctx, bson.M{"group_id": groupID}, opts).Decode(&m); err != nil {
		return models.GroupMessage{}, err
	}
	return m, nil
}

// ListByGroup returns every message in the group, pinned block first,
// newest first within each block.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMessage, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "is_pinned", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GroupMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
