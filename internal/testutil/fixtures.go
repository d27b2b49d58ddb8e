// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upliftapp/uplift/internal/domain/models"
)

// Fixtures inserts well-formed documents directly, bypassing the
// stores, so each test exercises only the code under test.
type Fixtures struct {
	t  *testing.T
	db *mongo.Database
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{t: t, db: db}
}

// CreateUser inserts a user with a unique provider identity.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		StytchID:  "user-test-" + uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("fixture user: %v", err)
	}
	return u
}

// CreateGroup inserts a group owned by ownerID, with the owner's admin
// membership seeded the way the store does it.
func (f *Fixtures) CreateGroup(ctx context.Context, name, code string, isPublic bool, ownerID primitive.ObjectID) models.Group {
	f.t.Helper()
	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    name,
		Code:      code,
		IsPublic:  isPublic,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("fixture group: %v", err)
	}
	f.CreateMembership(ctx, g.ID, ownerID, models.RoleAdmin)
	return g
}

// CreateMembership inserts one membership document.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()
	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture membership: %v", err)
	}
	return m
}

// CreatePrayerRequest inserts a request. groupID may be nil for the
// public feed.
func (f *Fixtures) CreatePrayerRequest(ctx context.Context, text string, userID *primitive.ObjectID, groupID *primitive.ObjectID, anonymous bool) models.PrayerRequest {
	f.t.Helper()
	now := time.Now().UTC()
	pr := models.PrayerRequest{
		ID:          primitive.NewObjectID(),
		Text:        text,
		UserID:      userID,
		IsAnonymous: anonymous,
		GroupID:     groupID,
		IsGroupOnly: groupID != nil,
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("prayer_requests").InsertOne(ctx, pr); err != nil {
		f.t.Fatalf("fixture prayer request: %v", err)
	}
	return pr
}

// CreateCommitment inserts a commitment and bumps the request counter,
// preserving the counter invariant.
func (f *Fixtures) CreateCommitment(ctx context.Context, requestID, userID primitive.ObjectID) models.PrayerCommitment {
	f.t.Helper()
	c := models.PrayerCommitment{
		ID:              primitive.NewObjectID(),
		PrayerRequestID: requestID,
		UserID:          userID,
		CreatedAt:       time.Now().UTC(),
	}
	if _, err := f.db.Collection("prayer_commitments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("fixture commitment: %v", err)
	}
	if _, err := f.db.Collection("prayer_requests").UpdateByID(ctx, requestID,
		bson.M{"$inc": bson.M{"prayer_count": 1}}); err != nil {
		f.t.Fatalf("fixture commitment count: %v", err)
	}
	return c
}

// CreateMessage inserts a group message.
func (f *Fixtures) CreateMessage(ctx context.Context, groupID, userID primitive.ObjectID, text string, pinned bool) models.GroupMessage {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.GroupMessage{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		Message:   text,
		IsPinned:  pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("group_messages").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("fixture message: %v", err)
	}
	return m
}
