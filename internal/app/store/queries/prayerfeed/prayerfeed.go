// Package prayerfeed assembles prayer requests for API responses,
// joining in author names and honoring anonymity.
//
// An anonymous request keeps its author reference in storage (the
// author can still delete it) but leaves the Author field empty on the
// way out. Requests whose author is nil, or whose author account no
// longer resolves, also go out without an Author.
package prayerfeed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	commitmentstore "github.com/upliftapp/uplift/internal/app/store/commitments"
	prayerstore "github.com/upliftapp/uplift/internal/app/store/prayers"
	userstore "github.com/upliftapp/uplift/internal/app/store/users"
	"github.com/upliftapp/uplift/internal/domain/models"
)

// Author is the public slice of a user attached to a request.
type Author struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty"`
}

// RequestView is a prayer request ready for the wire.
type RequestView struct {
	models.PrayerRequest
	Author *Author `json:"author,omitempty"`
}

// Public returns the public feed with authors resolved.
func Public(ctx context.Context, db *mongo.Database) ([]RequestView, error) {
	reqs, err := prayerstore.New(db).ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	return attachAuthors(ctx, db, reqs)
}

// ForGroup returns a group's feed with authors resolved.
func ForGroup(ctx context.Context, db *mongo.Database, groupID primitive.ObjectID) ([]RequestView, error) {
	reqs, err := prayerstore.New(db).ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return attachAuthors(ctx, db, reqs)
}

// Committed returns the requests the user has committed to pray for,
// most recent commitment first, with authors resolved.
func Committed(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]RequestView, error) {
	reqs, err := commitmentstore.New(db).ListRequestsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return attachAuthors(ctx, db, reqs)
}

// One returns a single request with its author resolved, or
// mongo.ErrNoDocuments.
func One(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (RequestView, error) {
	pr, err := prayerstore.New(db).GetByID(ctx, id)
	if err != nil {
		return RequestView{}, err
	}
	views, err := attachAuthors(ctx, db, []models.PrayerRequest{pr})
	if err != nil {
		return RequestView{}, err
	}
	return views[0], nil
}

func attachAuthors(ctx context.Context, db *mongo.Database, reqs []models.PrayerRequest) ([]RequestView, error) {
	ids := make([]primitive.ObjectID, 0, len(reqs))
	seen := make(map[primitive.ObjectID]bool)
	for _, pr := range reqs {
		if pr.IsAnonymous || pr.UserID == nil || seen[*pr.UserID] {
			continue
		}
		seen[*pr.UserID] = true
		ids = append(ids, *pr.UserID)
	}

	byID := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) > 0 {
		users, err := userstore.New(db).ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	out := make([]RequestView, 0, len(reqs))
	for _, pr := range reqs {
		v := RequestView{PrayerRequest: pr}
		if !pr.IsAnonymous && pr.UserID != nil {
			if u, ok := byID[*pr.UserID]; ok {
				v.Author = &Author{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
			}
		}
		out = append(out, v)
	}
	return out, nil
}
