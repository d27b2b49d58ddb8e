// internal/domain/models/prayerrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prayer request moderation statuses. The review workflow is not wired
// to any endpoint yet; the fields exist so the schema doesn't have to
// change when it lands.
const (
	StatusActive      = "active"
	StatusUnderReview = "under_review"
	StatusReviewed    = "reviewed"
)

// PrayerRequest is a single request for prayer, either public
// (GroupID nil) or scoped to a group.
//
// Invariant: PrayerCount always equals the number of live
// PrayerCommitment documents referencing this request.
type PrayerRequest struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Text        string              `bson:"text" json:"text"`
	UserID      *primitive.ObjectID `bson:"user_id" json:"userId"`
	IsAnonymous bool                `bson:"is_anonymous" json:"isAnonymous"`
	PrayerCount int64               `bson:"prayer_count" json:"prayerCount"`
	GroupID     *primitive.ObjectID `bson:"group_id" json:"groupId"`
	IsGroupOnly bool                `bson:"is_group_only" json:"isGroupOnly"`

	ReportCount int64               `bson:"report_count" json:"reportCount"`
	Status      string              `bson:"status" json:"status"`
	ReviewedBy  *primitive.ObjectID `bson:"reviewed_by" json:"reviewedBy"`
	ReviewedAt  *time.Time          `bson:"reviewed_at" json:"reviewedAt"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PrayerCommitment records one user's standing pledge to pray for one
// request. Unique per (prayer_request_id, user_id); that index is what
// makes the toggle operation well-defined under concurrency.
type PrayerCommitment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PrayerRequestID primitive.ObjectID `bson:"prayer_request_id" json:"prayerRequestId"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// PrayerRequestReport is a user report against a request. Schema only:
// the unique index exists but no endpoint writes or reads these yet.
type PrayerRequestReport struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PrayerRequestID primitive.ObjectID `bson:"prayer_request_id" json:"prayerRequestId"`
	ReportedBy      primitive.ObjectID `bson:"reported_by" json:"reportedBy"`
	Reason          string             `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
