// internal/app/store/polls/pollstore_test.go
package pollstore_test

import (
	"testing"
	"time"

	pollstore "github.com/huddleup/huddle/internal/app/store/polls"
	"github.com/huddleup/huddle/internal/domain/models"
	"github.com/huddleup/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMostRecentByGroup_LatestExpiryWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := pollstore.New(db)
	groupID := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	now := time.Now().UTC()

	// Inserted first, expires last.
	late, err := s.Create(ctx, models.Poll{Question: "Next month?", GroupID: groupID, CreatedBy: creator, ExpiresAt: now.Add(30 * 24 * time.Hour)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(ctx, models.Poll{Question: "Tomorrow?", GroupID: groupID, CreatedBy: creator, ExpiresAt: now.Add(24 * time.Hour)}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.MostRecentByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("MostRecentByGroup failed: %v", err)
	}
	if got.ID != late.ID {
		t.Errorf("most recent: got %s, want %s", got.ID.Hex(), late.ID.Hex())
	}

	if _, err := s.MostRecentByGroup(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("empty group: got %v, want ErrNoDocuments", err)
	}
}

func TestGetOption_ScopedToPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := pollstore.New(db)
	groupID := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	now := time.Now().UTC()

	poll, err := s.Create(ctx, models.Poll{Question: "Where?", GroupID: groupID, CreatedBy: creator, ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	opts := []models.PollOption{{PollID: poll.ID, ActivityID: primitive.NewObjectID(), Text: "Bowling"}}
	if err := s.InsertOptions(ctx, opts); err != nil {
		t.Fatalf("InsertOptions failed: %v", err)
	}

	stored, err := s.OptionsByPoll(ctx, poll.ID)
	if err != nil || len(stored) != 1 {
		t.Fatalf("OptionsByPoll: got %d/%v, want 1", len(stored), err)
	}

	if _, err := s.GetOption(ctx, poll.ID, stored[0].ID); err != nil {
		t.Errorf("GetOption(same poll) failed: %v", err)
	}
	// The same option under a different poll ID reads as absent.
	if _, err := s.GetOption(ctx, primitive.NewObjectID(), stored[0].ID); err != mongo.ErrNoDocuments {
		t.Errorf("GetOption(other poll): got %v, want ErrNoDocuments", err)
	}
}

func TestDelete_RemovesOptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := pollstore.New(db)
	groupID := primitive.NewObjectID()
	now := time.Now().UTC()

	poll, err := s.Create(ctx, models.Poll{Question: "Where?", GroupID: groupID, CreatedBy: primitive.NewObjectID(), ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.InsertOptions(ctx, []models.PollOption{
		{PollID: poll.ID, ActivityID: primitive.NewObjectID(), Text: "Bowling"},
		{PollID: poll.ID, ActivityID: primitive.NewObjectID(), Text: "Museum"},
	}); err != nil {
		t.Fatalf("InsertOptions failed: %v", err)
	}

	n, err := s.Delete(ctx, poll.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: got %d/%v, want 1", n, err)
	}

	opts, err := s.OptionsByPoll(ctx, poll.ID)
	if err != nil {
		t.Fatalf("OptionsByPoll failed: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("options after delete: got %d, want 0", len(opts))
	}
}

func TestDeleteByGroup_ReturnsPollIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := pollstore.New(db)
	groupID := primitive.NewObjectID()
	now := time.Now().UTC()

	a, err := s.Create(ctx, models.Poll{Question: "A?", GroupID: groupID, CreatedBy: primitive.NewObjectID(), ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	b, err := s.Create(ctx, models.Poll{Question: "B?", GroupID: groupID, CreatedBy: primitive.NewObjectID(), ExpiresAt: now.Add(2 * time.Hour)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ids, err := s.DeleteByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("DeleteByGroup failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("deleted poll IDs: got %d, want 2", len(ids))
	}
	seen := map[primitive.ObjectID]bool{ids[0]: true, ids[1]: true}
	if !seen[a.ID] || !seen[b.ID] {
		t.Error("DeleteByGroup must return the IDs of the deleted polls")
	}

	// Empty group yields no IDs and no error.
	ids, err = s.DeleteByGroup(ctx, primitive.NewObjectID())
	if err != nil || len(ids) != 0 {
		t.Errorf("empty group: got %d/%v, want 0/nil", len(ids), err)
	}
}
