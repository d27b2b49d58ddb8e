// internal/app/store/prayers/prayerstore.go
package prayerstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/domain/models"
)

// Store owns the prayer_requests collection. It also holds the
// commitments collection so an author delete can take its commitments
// with it.
type Store struct {
	c           *mongo.Collection
	commitments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("prayer_requests"),
		commitments: db.Collection("prayer_commitments"),
	}
}

func (s *Store) Create(ctx context.Context, pr models.PrayerRequest) (models.PrayerRequest, error) {
	now := time.Now().UTC()
	pr.ID = primitive.NewObjectID()
	if pr.Status == "" {
		pr.Status = models.StatusActive
	}
	pr.PrayerCount = 0
	pr.ReportCount = 0
	pr.CreatedAt = now
	pr.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, pr); err != nil {
		return models.PrayerRequest{}, err
	}
	return pr, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PrayerRequest, error) {
	var pr models.PrayerRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&pr); err != nil {
		return models.PrayerRequest{}, err
	}
	return pr, nil
}

// ListPublic returns the public feed, newest first. Public means not
// attached to any group; group requests never appear here regardless of
// the group's visibility.
func (s *Store) ListPublic(ctx context.Context) ([]models.PrayerRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PrayerRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByGroup returns a group's requests, newest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.PrayerRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.PrayerRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOwned removes a request only if userID authored it, cascading
// its commitments. Returns the number of request documents deleted
// (0 when the request is missing or owned by someone else).
func (s *Store) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, nil
	}
	if _, err := s.commitments.DeleteMany(ctx, bson.M{"prayer_request_id": id}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}
