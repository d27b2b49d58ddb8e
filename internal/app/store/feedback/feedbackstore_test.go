package feedbackstore_test

import (
	"testing"
	"time"

	feedbackstore "github.com/upliftapp/uplift/internal/app/store/feedback"
	"github.com/upliftapp/uplift/internal/domain/models"
	"github.com/upliftapp/uplift/internal/testutil"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Feedback{Text: "older note"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.Create(ctx, models.Feedback{Text: "newer note"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Text != "newer note" || got[1].Text != "older note" {
		t.Errorf("order: got %q then %q, want newest first", got[0].Text, got[1].Text)
	}
}
