// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateUser = errors.New("an account already exists for this identity")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByStytchID(ctx context.Context, stytchID string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"stytch_id": stytchID}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateName sets the name fields for the user with the given provider
// identity. A nil field leaves the stored value unchanged. Returns the
// updated document, or mongo.ErrNoDocuments if no such user exists.
func (s *Store) UpdateName(ctx context.Context, stytchID string, firstName, lastName *string) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if firstName != nil {
		set["first_name"] = *firstName
	}
	if lastName != nil {
		set["last_name"] = *lastName
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"stytch_id": stytchID}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListByIDs returns the users whose IDs appear in ids, in no particular
// order. Missing IDs are silently skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
