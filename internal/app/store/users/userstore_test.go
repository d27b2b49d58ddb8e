package userstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/upliftapp/uplift/internal/app/store/users"
	"github.com/upliftapp/uplift/internal/domain/models"
	"github.com/upliftapp/uplift/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		StytchID:  "user-test-abc",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByStytchID(ctx, "user-test-abc")
	if err != nil {
		t.Fatalf("GetByStytchID failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID: got %v, want %v", got.ID, created.ID)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" {
		t.Errorf("name: got %q %q", got.FirstName, got.LastName)
	}
}

func TestStore_Create_DuplicateStytchID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{StytchID: "user-test-dup"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{StytchID: "user-test-dup"})
	if err != userstore.ErrDuplicateUser {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestStore_UpdateName_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		StytchID:  "user-test-upd",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := "Grace"
	got, err := store.UpdateName(ctx, "user-test-upd", &first, nil)
	if err != nil {
		t.Fatalf("UpdateName failed: %v", err)
	}
	if got.FirstName != "Grace" {
		t.Errorf("FirstName: got %q, want %q", got.FirstName, "Grace")
	}
	if got.LastName != "Lovelace" {
		t.Errorf("LastName: got %q, want it unchanged", got.LastName)
	}
}

func TestStore_UpdateName_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := "Nobody"
	_, err := store.UpdateName(ctx, "user-test-missing", &first, nil)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestFetcher_Resolve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if id := fetcher.Resolve(ctx, "user-test-none"); id != nil {
		t.Errorf("expected nil for unknown identity, got %v", id)
	}

	created, err := store.Create(ctx, models.User{StytchID: "user-test-resolve"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id := fetcher.Resolve(ctx, "user-test-resolve")
	if id == nil || *id != created.ID {
		t.Errorf("Resolve: got %v, want %v", id, created.ID)
	}
}
