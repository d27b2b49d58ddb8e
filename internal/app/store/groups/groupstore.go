// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upliftapp/uplift/internal/app/system/joincode"
	"github.com/upliftapp/uplift/internal/domain/models"
)

// Store owns the groups collection plus the collections a group
// cascade touches on delete.
type Store struct {
	c        *mongo.Collection
	members  *mongo.Collection
	requests *mongo.Collection
}

var (
	ErrDuplicateGroupName = errors.New("a group with this name already exists")
	ErrCodeExhausted      = errors.New("could not generate a unique join code")
)

// codeAttempts bounds collision retries during join-code generation.
const codeAttempts = 10

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("groups"),
		members:  db.Collection("group_members"),
		requests: db.Collection("prayer_requests"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create inserts a new group with a freshly generated join code and
// seeds the owner's admin membership. Name uniqueness is enforced by
// the unique index; the owner membership insert cannot conflict since
// the group ID is new.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	code, err := s.generateCode(ctx)
	if err != nil {
		return models.Group{}, err
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.Code = code
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, err
	}

	owner := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		GroupID:  g.ID,
		UserID:   g.OwnerID,
		Role:     models.RoleAdmin,
		JoinedAt: now,
	}
	if _, err := s.members.InsertOne(ctx, owner); err != nil {
		// Roll the group back so a failed seed doesn't leave an
		// ownerless group behind.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": g.ID})
		return models.Group{}, err
	}
	return g, nil
}

// generateCode picks random codes until one is unused, giving up after
// codeAttempts tries. The code field carries no unique index, so this
// is best-effort; see the indexes package.
func (s *Store) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := joincode.New()
		n, err := s.c.CountDocuments(ctx, bson.M{"code": code})
		if err != nil {
			return "", err
		}
		if n == 0 {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// ListPublic returns publicly visible groups, newest first.
func (s *Store) ListPublic(ctx context.Context) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns groups whose name contains term, case-insensitively,
// regardless of visibility. Private groups are findable by name; their
// join code is what stays secret. Matching runs against the folded
// name so accents don't matter either.
func (s *Store) Search(ctx context.Context, term string) ([]models.Group, error) {
	pattern := regexp.QuoteMeta(text.Fold(term))
	filter := bson.M{
		"name_ci": bson.M{"$regex": pattern},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUser returns the groups the user belongs to, most recently
// joined first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	mOpts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: -1}})
	cur, err := s.members.Find(ctx, bson.M{"user_id": userID}, mOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []models.Group{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.GroupID)
	}

	gcur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer gcur.Close(ctx)

	var groups []models.Group
	if err := gcur.All(ctx, &groups); err != nil {
		return nil, err
	}

	// Preserve membership order (newest join first).
	byID := make(map[primitive.ObjectID]models.Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	out := make([]models.Group, 0, len(memberships))
	for _, m := range memberships {
		if g, ok := byID[m.GroupID]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// Code returns the group's join code.
func (s *Store) Code(ctx context.Context, id primitive.ObjectID) (string, error) {
	proj := options.FindOne().SetProjection(bson.M{"code": 1})
	var doc struct {
		Code string `bson:"code"`
	}
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&doc); err != nil {
		return "", err
	}
	return doc.Code, nil
}

// UpdateDisplayName sets the group's display name and returns the
// updated document.
func (s *Store) UpdateDisplayName(ctx context.Context, id primitive.ObjectID, displayName string) (models.Group, error) {
	set := bson.M{
		"display_name": displayName,
		"updated_at":   time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Group
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// DeleteCascade removes the group along with its memberships and its
// prayer requests. Group messages are left in place. Returns the number
// of group documents deleted (0 or 1).
func (s *Store) DeleteCascade(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.members.DeleteMany(ctx, bson.M{"group_id": id}); err != nil {
		return 0, err
	}
	if _, err := s.requests.DeleteMany(ctx, bson.M{"group_id": id}); err != nil {
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
