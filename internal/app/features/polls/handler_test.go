// internal/app/features/polls/handler_test.go
package polls_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huddleup/huddle/internal/app/catalog"
	"github.com/huddleup/huddle/internal/app/features/polls"
	"github.com/huddleup/huddle/internal/app/pollengine"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"github.com/huddleup/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newRouter(db *mongo.Database) http.Handler {
	engine := pollengine.New(db, catalog.New(db, zap.NewNop()), zap.NewNop(), pollengine.Options{
		SingleVote: true,
		Now:        func() time.Time { return fixedNow },
	})
	h := polls.NewHandler(db, engine, zap.NewNop())
	return polls.Routes(h)
}

func TestCreateAndVoteFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	g := f.CreateGroup(ctx, "Friday Crew", "ABC123", creator.ID)
	f.CreateMembership(ctx, creator.ID, g.ID, true)
	act := f.CreateActivity(ctx, "Bowling", "sports", 34.05, -118.25)

	router := newRouter(db)

	body := `{"question":"Where to?","group_id":"` + g.ID.Hex() + `","expires_at":"` +
		fixedNow.Add(24*time.Hour).Format(time.RFC3339) + `","activity_ids":["` + act.ID.Hex() + `"]}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set(authn.HeaderUserID, creator.ID.Hex())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID      string `json:"id"`
		Options []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"options"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(created.Options) != 1 || created.Options[0].Text != "Bowling" {
		t.Fatalf("options: got %+v", created.Options)
	}

	req = httptest.NewRequest("POST", "/"+created.ID+"/votes",
		strings.NewReader(`{"option_id":"`+created.Options[0].ID+`"}`))
	req.Header.Set(authn.HeaderUserID, creator.ID.Hex())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("vote status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var receipt struct {
		ReceiptID string `json:"receipt_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("failed to parse receipt: %v", err)
	}
	if receipt.ReceiptID == "" {
		t.Error("receipt_id must not be empty")
	}

	// Second vote conflicts under the single-vote policy.
	req = httptest.NewRequest("POST", "/"+created.ID+"/votes",
		strings.NewReader(`{"option_id":"`+created.Options[0].ID+`"}`))
	req.Header.Set(authn.HeaderUserID, creator.ID.Hex())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second vote: got %d, want %d", rec.Code, http.StatusConflict)
	}

	// The tally shows on the poll view.
	req = httptest.NewRequest("GET", "/"+created.ID, nil)
	req.Header.Set(authn.HeaderUserID, creator.ID.Hex())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("view status: got %d", rec.Code)
	}
	var detail struct {
		Options []struct {
			VoteCount int `json:"vote_count"`
		} `json:"options"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to parse detail: %v", err)
	}
	if len(detail.Options) != 1 || detail.Options[0].VoteCount != 1 {
		t.Errorf("tally: got %+v", detail.Options)
	}
}

func TestVote_ExpiredPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")
	g := f.CreateGroup(ctx, "Friday Crew", "ABC123", member.ID)
	f.CreateMembership(ctx, member.ID, g.ID, true)
	act := f.CreateActivity(ctx, "Bowling", "sports", 34.05, -118.25)
	poll := f.CreatePoll(ctx, g.ID, member.ID, "Too late?", fixedNow.Add(-time.Hour))
	opt := f.CreatePollOption(ctx, poll.ID, act.ID, act.Name)

	router := newRouter(db)

	req := httptest.NewRequest("POST", "/"+poll.ID.Hex()+"/votes",
		strings.NewReader(`{"option_id":"`+opt.ID.Hex()+`"}`))
	req.Header.Set(authn.HeaderUserID, member.ID.Hex())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expired vote: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLatest_ReturnsNewestExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	member := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	g := f.CreateGroup(ctx, "Friday Crew", "ABC123", member.ID)
	f.CreateMembership(ctx, member.ID, g.ID, true)
	late := f.CreatePoll(ctx, g.ID, member.ID, "Next month?", fixedNow.Add(30*24*time.Hour))
	f.CreatePoll(ctx, g.ID, member.ID, "Tomorrow?", fixedNow.Add(24*time.Hour))

	router := newRouter(db)

	req := httptest.NewRequest("GET", "/group/"+g.ID.Hex()+"/latest", nil)
	req.Header.Set(authn.HeaderUserID, member.ID.Hex())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var detail struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if detail.ID != late.ID.Hex() {
		t.Errorf("latest poll: got %s, want %s", detail.ID, late.ID.Hex())
	}
}

func TestUpdateAndDelete_RequireGroupAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	member := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")
	g := f.CreateGroup(ctx, "Friday Crew", "ABC123", admin.ID)
	f.CreateMembership(ctx, admin.ID, g.ID, true)
	f.CreateMembership(ctx, member.ID, g.ID, false)
	poll := f.CreatePoll(ctx, g.ID, admin.ID, "Where to?", fixedNow.Add(24*time.Hour))

	router := newRouter(db)

	req := httptest.NewRequest("PATCH", "/"+poll.ID.Hex(), strings.NewReader(`{"question":"Changed?"}`))
	req.Header.Set(authn.HeaderUserID, member.ID.Hex())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member update: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest("PATCH", "/"+poll.ID.Hex(), strings.NewReader(`{"question":"Changed?"}`))
	req.Header.Set(authn.HeaderUserID, admin.ID.Hex())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin update: got %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("DELETE", "/"+poll.ID.Hex(), nil)
	req.Header.Set(authn.HeaderUserID, admin.ID.Hex())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin delete: got %d", rec.Code)
	}
}
