package groupstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	groupstore "github.com/upliftapp/uplift/internal/app/store/groups"
	"github.com/upliftapp/uplift/internal/app/system/joincode"
	"github.com/upliftapp/uplift/internal/domain/models"
	"github.com/upliftapp/uplift/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")

	created, err := store.Create(ctx, models.Group{
		Name:        "Morning Prayer",
		Description: "Early risers",
		IsPublic:    true,
		OwnerID:     owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if n := len(created.Code); n < joincode.MinLength || n > joincode.MaxLength {
		t.Errorf("code length: got %d, want %d..%d", n, joincode.MinLength, joincode.MaxLength)
	}
	if created.Code != joincode.Normalize(created.Code) {
		t.Errorf("code not normalized: %q", created.Code)
	}

	// The owner's admin membership is seeded with the group.
	var m models.GroupMembership
	err = db.Collection("group_members").FindOne(ctx, bson.M{
		"group_id": created.ID,
		"user_id":  owner.ID,
	}).Decode(&m)
	if err != nil {
		t.Fatalf("owner membership not seeded: %v", err)
	}
	if m.Role != models.RoleAdmin {
		t.Errorf("owner role: got %q, want %q", m.Role, models.RoleAdmin)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")

	if _, err := store.Create(ctx, models.Group{Name: "Taken", OwnerID: owner.ID}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Group{Name: "Taken", OwnerID: owner.ID})
	if err != groupstore.ErrDuplicateGroupName {
		t.Errorf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestStore_ListPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	if _, err := store.Create(ctx, models.Group{Name: "Open A", IsPublic: true, OwnerID: owner.ID}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.Create(ctx, models.Group{Name: "Open B", IsPublic: true, OwnerID: owner.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Hidden", IsPublic: false, OwnerID: owner.ID}); err != nil {
		t.Fatal(err)
	}

	got, err := store.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 public groups, got %d", len(got))
	}
	if got[0].Name != "Open B" || got[1].Name != "Open A" {
		t.Errorf("order: got %q, %q; want newest first", got[0].Name, got[1].Name)
	}
}

func TestStore_Search_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	if _, err := store.Create(ctx, models.Group{Name: "Campus Ministry", IsPublic: true, OwnerID: owner.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Private Ministry", IsPublic: false, OwnerID: owner.ID}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Search(ctx, "MINISTRY")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// Private groups are findable by name too; only the code is secret.
	if len(got) != 2 {
		t.Fatalf("expected both matches, got %d results", len(got))
	}
	names := map[string]bool{got[0].Name: true, got[1].Name: true}
	if !names["Campus Ministry"] || !names["Private Ministry"] {
		t.Errorf("got %q and %q", got[0].Name, got[1].Name)
	}

	got, err = store.Search(ctx, "campus")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Campus Ministry" {
		t.Errorf("narrow term: got %+v", got)
	}
}

func TestStore_ListForUser_NewestJoinFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	member := fixtures.CreateUser(ctx, "Manny", "Member")

	first := fixtures.CreateGroup(ctx, "First Joined", "AAAAAA", true, owner.ID)
	second := fixtures.CreateGroup(ctx, "Second Joined", "BBBBBB", true, owner.ID)

	fixtures.CreateMembership(ctx, first.ID, member.ID, models.RoleMember)
	time.Sleep(2 * time.Millisecond)
	fixtures.CreateMembership(ctx, second.ID, member.ID, models.RoleMember)

	got, err := store.ListForUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("order: got %q, %q; want most recent join first", got[0].Name, got[1].Name)
	}
}

func TestStore_DeleteCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	member := fixtures.CreateUser(ctx, "Manny", "Member")
	g := fixtures.CreateGroup(ctx, "Doomed", "CCCCCC", false, owner.ID)
	fixtures.CreateMembership(ctx, g.ID, member.ID, models.RoleMember)
	fixtures.CreatePrayerRequest(ctx, "group request", &member.ID, &g.ID, false)
	fixtures.CreateMessage(ctx, g.ID, owner.ID, "announcement", false)

	deleted, err := store.DeleteCascade(ctx, g.ID)
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	for _, c := range []string{"groups", "group_members", "prayer_requests"} {
		n, err := db.Collection(c).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("%s: %d documents left, want 0", c, n)
		}
	}

	// Messages are deliberately left behind by the cascade.
	n, err := db.Collection("group_messages").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("group_messages: got %d, want 1", n)
	}
}

func TestStore_UpdateDisplayName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	g := fixtures.CreateGroup(ctx, "Named", "DDDDDD", true, owner.ID)

	got, err := store.UpdateDisplayName(ctx, g.ID, "The Named Ones")
	if err != nil {
		t.Fatalf("UpdateDisplayName failed: %v", err)
	}
	if got.DisplayName != "The Named Ones" {
		t.Errorf("DisplayName: got %q", got.DisplayName)
	}
}
