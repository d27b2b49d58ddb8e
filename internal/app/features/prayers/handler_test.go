package prayers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/upliftapp/uplift/internal/app/features/prayers"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/domain/models"
	"github.com/upliftapp/uplift/internal/testutil"
)

func ident(u models.User) *auth.Identity {
	return &auth.Identity{StytchID: u.StytchID, UserID: &u.ID}
}

func request(t *testing.T, method, target string, body any, id *auth.Identity) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if id != nil {
		req = auth.WithTestIdentity(req, id)
	}
	return req
}

func TestHandleCreate_Public(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/create", map[string]any{
		"text": "  please pray for <b>my family</b>  ",
	}, ident(author)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data models.PrayerRequest `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Text != "please pray for my family" {
		t.Errorf("text not sanitized: %q", env.Data.Text)
	}
	if env.Data.GroupID != nil || env.Data.IsGroupOnly {
		t.Error("public request must not be group-scoped")
	}
}

func TestHandleCreate_GroupRequiresMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	outsider := fixtures.CreateUser(ctx, "Otto", "Outsider")
	g := fixtures.CreateGroup(ctx, "Group", "AAAAAA", true, owner.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/create", map[string]any{
		"text":    "group request",
		"groupId": g.ID.Hex(),
	}, ident(outsider)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("outsider create: got %d, want 404", rec.Code)
	}

	// A member's group request defaults to group-only.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/create", map[string]any{
		"text":    "group request",
		"groupId": g.ID.Hex(),
	}, ident(owner)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("member create: got %d, body %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data models.PrayerRequest `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.IsGroupOnly {
		t.Error("group request should default to group-only")
	}
}

func TestHandleGet_GroupVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Olive", "Owner")
	outsider := fixtures.CreateUser(ctx, "Otto", "Outsider")
	g := fixtures.CreateGroup(ctx, "Group", "AAAAAA", true, owner.ID)

	hidden := fixtures.CreatePrayerRequest(ctx, "members only", &owner.ID, &g.ID, false)

	// Group-only: members read it, everyone else sees 404.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/get/"+hidden.ID.Hex(), nil, ident(outsider)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("outsider: got %d, want 404", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/get/"+hidden.ID.Hex(), nil, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("anonymous: got %d, want 404", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/get/"+hidden.ID.Hex(), nil, ident(owner)))
	if rec.Code != http.StatusOK {
		t.Errorf("member: got %d, want 200", rec.Code)
	}

	// A group request the author opened up reads without membership.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/create", map[string]any{
		"text":        "shared with everyone",
		"groupId":     g.ID.Hex(),
		"isGroupOnly": false,
	}, ident(owner)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create open request: got %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data models.PrayerRequest `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/get/"+created.Data.ID.Hex(), nil, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("open request anonymous read: got %d, want 200", rec.Code)
	}
}

func TestHandleToggleAndCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	intercessor := fixtures.CreateUser(ctx, "Ines", "Intercessor")
	pr := fixtures.CreatePrayerRequest(ctx, "please pray", &author.ID, nil, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/toggle-commit/"+pr.ID.Hex(), nil, ident(intercessor)))
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: got %d, body %s", rec.Code, rec.Body.String())
	}
	var env struct {
		Data struct {
			Committed   bool  `json:"committed"`
			PrayerCount int64 `json:"prayerCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.Committed || env.Data.PrayerCount != 1 {
		t.Errorf("after toggle on: %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/check-commit/"+pr.ID.Hex(), nil, ident(intercessor)))
	if rec.Code != http.StatusOK {
		t.Fatalf("check: got %d", rec.Code)
	}
	var check struct {
		Data struct {
			Committed bool `json:"committed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatal(err)
	}
	if !check.Data.Committed {
		t.Error("expected committed=true")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/toggle-commit/"+pr.ID.Hex(), nil, ident(intercessor)))
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle off: got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Committed || env.Data.PrayerCount != 0 {
		t.Errorf("after toggle off: %+v", env.Data)
	}
}

func TestHandleToggle_MissingRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	intercessor := fixtures.CreateUser(ctx, "Ines", "Intercessor")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "POST", "/toggle-commit/656565656565656565656565", nil, ident(intercessor)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}

func TestHandleDelete_AuthorOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	other := fixtures.CreateUser(ctx, "Otto", "Other")
	pr := fixtures.CreatePrayerRequest(ctx, "mine", &author.ID, nil, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "DELETE", "/delete/"+pr.ID.Hex(), nil, ident(other)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("other delete: got %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "DELETE", "/delete/"+pr.ID.Hex(), nil, ident(author)))
	if rec.Code != http.StatusOK {
		t.Errorf("author delete: got %d, want 200", rec.Code)
	}
}

func TestHandleMyPrayerList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	intercessor := fixtures.CreateUser(ctx, "Ines", "Intercessor")
	pr := fixtures.CreatePrayerRequest(ctx, "committed to", &author.ID, nil, false)
	fixtures.CreatePrayerRequest(ctx, "ignored", &author.ID, nil, false)
	fixtures.CreateCommitment(ctx, pr.ID, intercessor.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/my-prayer-list", nil, ident(intercessor)))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	var env struct {
		Data []models.PrayerRequest `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 1 || env.Data[0].Text != "committed to" {
		t.Errorf("list: %+v", env.Data)
	}
}

func TestHandleGetAll_Anonymization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := prayers.Routes(prayers.NewHandler(db, zap.NewNop()))
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Ada", "Author")
	fixtures.CreatePrayerRequest(ctx, "anonymous", &author.ID, nil, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request(t, "GET", "/get-all", nil, &auth.Identity{StytchID: author.StytchID}))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}
	var env struct {
		Data []struct {
			Text   string          `json:"text"`
			Author json.RawMessage `json:"author"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("expected 1 request, got %d", len(env.Data))
	}
	if len(env.Data[0].Author) != 0 {
		t.Errorf("anonymous request leaked author: %s", env.Data[0].Author)
	}
}
