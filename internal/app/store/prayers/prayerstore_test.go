package prayerstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	prayerstore "github.com/upliftapp/uplift/internal/app/store/prayers"
	"github.com/upliftapp/uplift/internal/domain/models"
	"github.com/upliftapp/uplift/internal/testutil"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := prayerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	created, err := store.Create(ctx, models.PrayerRequest{
		Text:   "for healing",
		UserID: &author.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", created.Status, models.StatusActive)
	}
	if created.PrayerCount != 0 {
		t.Errorf("prayer_count: got %d, want 0", created.PrayerCount)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ListPublic_ExcludesGroupRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := prayerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	g := fixtures.CreateGroup(ctx, "Group", "AAAAAA", true, author.ID)

	fixtures.CreatePrayerRequest(ctx, "older public", &author.ID, nil, false)
	time.Sleep(2 * time.Millisecond)
	fixtures.CreatePrayerRequest(ctx, "newer public", &author.ID, nil, false)
	fixtures.CreatePrayerRequest(ctx, "group scoped", &author.ID, &g.ID, false)

	got, err := store.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 public requests, got %d", len(got))
	}
	if got[0].Text != "newer public" || got[1].Text != "older public" {
		t.Errorf("order: got %q then %q, want newest first", got[0].Text, got[1].Text)
	}
}

func TestStore_DeleteOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := prayerstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	other := fixtures.CreateUser(ctx, "Otto", "Other")
	pr := fixtures.CreatePrayerRequest(ctx, "mine", &author.ID, nil, false)
	fixtures.CreateCommitment(ctx, pr.ID, other.ID)

	// Someone else's delete is a no-op.
	deleted, err := store.DeleteOwned(ctx, pr.ID, other.ID)
	if err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted: got %d, want 0 for non-author", deleted)
	}

	deleted, err = store.DeleteOwned(ctx, pr.ID, author.ID)
	if err != nil {
		t.Fatalf("DeleteOwned failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	// Commitments go with the request.
	n, err := db.Collection("prayer_commitments").CountDocuments(ctx, bson.M{"prayer_request_id": pr.ID})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("commitments left: got %d, want 0", n)
	}
}
