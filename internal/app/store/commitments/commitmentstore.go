// internal/app/store/commitments/commitmentstore.go
package commitmentstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/domain/models"
)

// Store owns the prayer_commitments collection and updates the
// denormalized prayer_count on the owning request.
type Store struct {
	c        *mongo.Collection
	requests *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("prayer_commitments"),
		requests: db.Collection("prayer_requests"),
	}
}

// Toggle flips the caller's commitment on a request and returns the
// resulting state (true = committed).
//
// The algorithm leans on the unique (prayer_request_id, user_id) index
// to stay correct when the same user toggles concurrently:
//
//  1. Try to delete an existing commitment. If one was there, decrement
//     the counter and report uncommitted.
//  2. Otherwise insert. A duplicate-key error means a concurrent toggle
//     inserted first; that request already incremented the counter, so
//     report committed without touching it.
//  3. On a clean insert, increment the counter. If the request vanished
//     in between, undo the insert and report not-found.
//
// Either way prayer_count stays equal to the number of commitment
// documents.
func (s *Store) Toggle(ctx context.Context, requestID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"prayer_request_id": requestID, "user_id": userID}

	res, err := s.c.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 1 {
		_, err := s.requests.UpdateOne(ctx,
			bson.M{"_id": requestID},
			bson.M{"$inc": bson.M{"prayer_count": -1}})
		return false, err
	}

	commitment := models.PrayerCommitment{
		ID:              primitive.NewObjectID(),
		PrayerRequestID: requestID,
		UserID:          userID,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, commitment); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race to a concurrent commit; the winner already
			// counted it.
			return true, nil
		}
		return false, err
	}

	upd, err := s.requests.UpdateOne(ctx,
		bson.M{"_id": requestID},
		bson.M{"$inc": bson.M{"prayer_count": 1}})
	if err != nil {
		return true, err
	}
	if upd.MatchedCount == 0 {
		// Request was deleted under us; don't leave an orphan.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": commitment.ID})
		return false, mongo.ErrNoDocuments
	}
	return true, nil
}

// HasCommitted reports whether the user holds a commitment on the
// request.
func (s *Store) HasCommitted(ctx context.Context, requestID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"prayer_request_id": requestID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByRequest returns the number of commitments on a request.
func (s *Store) CountByRequest(ctx context.Context, requestID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"prayer_request_id": requestID})
}

// ListRequestsForUser returns the requests the user has committed to,
// most recent commitment first. Commitments whose request has since
// been deleted are skipped.
func (s *Store) ListRequestsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.PrayerRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var commitments []models.PrayerCommitment
	if err := cur.All(ctx, &commitments); err != nil {
		return nil, err
	}
	if len(commitments) == 0 {
		return []models.PrayerRequest{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(commitments))
	for _, c := range commitments {
		ids = append(ids, c.PrayerRequestID)
	}
	rcur, err := s.requests.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer rcur.Close(ctx)

	var requests []models.PrayerRequest
	if err := rcur.All(ctx, &requests); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.PrayerRequest, len(requests))
	for _, pr := range requests {
		byID[pr.ID] = pr
	}
	out := make([]models.PrayerRequest, 0, len(commitments))
	for _, c := range commitments {
		if pr, ok := byID[c.PrayerRequestID]; ok {
			out = append(out, pr)
		}
	}
	return out, nil
}
