// internal/app/store/memberships/membershipstore.go
package membershipstore

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
	c     *mongo.Collection
	users *mongo.Collection
}

var (
	ErrDuplicateMembership = errors.New("user is already a member of this group")
	errBadRole             = errors.New(`role must be "admin" or "member"`)
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("group_members"),
		users: db.Collection("users"),
	}
}

// Add creates a membership. The unique (group_id, user_id) index makes
// a repeat join surface as ErrDuplicateMembership rather than a second
// document.
func (s *Store) Add(ctx context.Context, groupID, userID primitive.ObjectID, role string) (models.GroupMembership, error) {
	if role != models.RoleAdmin && role != models.RoleMember {
		return models.GroupMembership{}, errBadRole
	}
	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.GroupMembership{}, ErrDuplicateMembership
		}
		return models.GroupMembership{}, err
	}
	return m, nil
}

// Remove deletes the membership for (groupID, userID). Returns the
// number of documents deleted (0 or 1).
func (s *Store) Remove(ctx context.Context, groupID, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Get returns the membership for (groupID, userID), or
// mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, groupID, userID primitive.ObjectID) (models.GroupMembership, error) {
	var m models.GroupMembership
	if err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&m); err != nil {
		return models.GroupMembership{}, err
	}
	return m, nil
}

// Exists reports whether the user belongs to the group.
func (s *Store) Exists(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"group_id": groupID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetRole updates the role on an existing membership. Returns the
// number of documents matched (0 when the user is not a member).
func (s *Store) SetRole(ctx context.Context, groupID, userID primitive.ObjectID, role string) (int64, error) {
	if role != models.RoleAdmin && role != models.RoleMember {
		return 0, errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Member is one roster entry with the user's profile joined in.
type Member struct {
	Membership models.GroupMembership `json:"membership"`
	User       models.User            `json:"user"`
}

// ListByGroup returns the group roster with admins first, then members,
// each block in join order.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]Member, error) {
	// "admin" sorts before "member", so a plain role sort gives the
	// admins-first ordering.
	opts := options.Find().SetSort(bson.D{
		{Key: "role", Value: 1},
		{Key: "joined_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []Member{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	ucur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer ucur.Close(ctx)

	var users []models.User
	if err := ucur.All(ctx, &users); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]Member, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, Member{Membership: m, User: byID[m.UserID]})
	}
	return out, nil
}

// CountByGroup returns the number of members in a group.
func (s *Store) CountByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"group_id": groupID})
}
