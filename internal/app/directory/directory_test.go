// internal/app/directory/directory_test.go
package directory_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/huddleup/huddle/internal/app/directory"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/invitecode"
	"github.com/huddleup/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate_GeneratesCodeAndAdminMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(g.InviteCode) != invitecode.Length {
		t.Errorf("invite code length: got %d, want %d", len(g.InviteCode), invitecode.Length)
	}
	for _, c := range g.InviteCode {
		if !strings.ContainsRune(invitecode.Alphabet, c) {
			t.Errorf("invite code %q contains %q outside the alphabet", g.InviteCode, c)
		}
	}

	var m struct {
		IsAdmin bool `bson:"is_admin"`
	}
	err = db.Collection("group_memberships").
		FindOne(ctx, bson.M{"group_id": g.ID, "user_id": creator.ID}).
		Decode(&m)
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if !m.IsAdmin {
		t.Error("creator membership should be admin")
	}
}

func TestJoin_ByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	joiner := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m, err := dir.Join(ctx, joiner.ID, g.InviteCode)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if m.IsAdmin {
		t.Error("joined member should not be admin")
	}
	if m.GroupID != g.ID {
		t.Errorf("membership group: got %s, want %s", m.GroupID.Hex(), g.ID.Hex())
	}
}

func TestJoin_UnknownCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")

	dir := directory.New(db, zap.NewNop())
	_, err := dir.Join(ctx, user.ID, "AAAAAA")
	if !errors.Is(err, apperr.NotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestJoin_AlreadyMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The creator already holds a membership from Create.
	_, err = dir.Join(ctx, creator.ID, g.InviteCode)
	if !errors.Is(err, apperr.Conflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestLeave_NonMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	outsider := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = dir.Leave(ctx, outsider.ID, g.ID)
	if !errors.Is(err, apperr.NotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestLeave_ThenRejoin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	member := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := dir.Join(ctx, member.ID, g.InviteCode); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	if err := dir.Leave(ctx, member.ID, g.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if _, err := dir.Join(ctx, member.ID, g.InviteCode); err != nil {
		t.Fatalf("rejoin after leave failed: %v", err)
	}
}

func TestLeave_LastAdminAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := dir.Leave(ctx, creator.ID, g.ID); err != nil {
		t.Fatalf("last admin should be able to leave: %v", err)
	}

	n, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{"group_id": g.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 memberships, got %d", n)
	}
}

func TestFindGroup_AssemblesMembersAndPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")
	member := f.CreateUser(ctx, "Grace", "Hopper", "grace@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := dir.Join(ctx, member.ID, g.InviteCode); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	f.CreatePoll(ctx, g.ID, creator.ID, "Where to?", time.Now().Add(24*time.Hour))

	detail, err := dir.FindGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("FindGroup failed: %v", err)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("members: got %d, want 2", len(detail.Members))
	}
	// Admins sort first.
	if !detail.Members[0].IsAdmin {
		t.Error("expected admin member first")
	}
	if detail.Members[0].Email != creator.Email {
		t.Errorf("first member email: got %q, want %q", detail.Members[0].Email, creator.Email)
	}
	if len(detail.Polls) != 1 {
		t.Errorf("polls: got %d, want 1", len(detail.Polls))
	}
}

func TestUpdateGroup_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dir := directory.New(db, zap.NewNop())
	name := "New Name"
	_, err := dir.UpdateGroup(ctx, primitive.NewObjectID(), directory.GroupPatch{Name: &name})
	if !errors.Is(err, apperr.NotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUpdateGroup_Rename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "Saturday Crew"
	updated, err := dir.UpdateGroup(ctx, g.ID, directory.GroupPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name: got %q, want %q", updated.Name, name)
	}
	if updated.InviteCode != g.InviteCode {
		t.Error("invite code must not change on rename")
	}
}

func TestDeleteGroup_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := f.CreateUser(ctx, "Ada", "Lovelace", "ada@example.com")

	dir := directory.New(db, zap.NewNop())
	g, err := dir.Create(ctx, "Friday Crew", creator.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	act := f.CreateActivity(ctx, "Bowling", "sports", 34.05, -118.25)
	poll := f.CreatePoll(ctx, g.ID, creator.ID, "Where to?", time.Now().Add(24*time.Hour))
	opt := f.CreatePollOption(ctx, poll.ID, act.ID, act.Name)
	f.CreateVote(ctx, poll.ID, opt.ID, creator.ID)

	if err := dir.DeleteGroup(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	for _, coll := range []string{"groups", "group_memberships", "polls", "poll_options", "votes"} {
		n, err := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s failed: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("%s: expected 0 documents after cascade, got %d", coll, n)
		}
	}

	if err := dir.DeleteGroup(ctx, g.ID); !errors.Is(err, apperr.NotFound) {
		t.Errorf("second delete: expected not-found, got %v", err)
	}
}
