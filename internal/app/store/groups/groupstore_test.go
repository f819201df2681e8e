// internal/app/store/groups/groupstore_test.go
package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/huddleup/huddle/internal/app/store/groups"
	"github.com/huddleup/huddle/internal/domain/models"
	"github.com/huddleup/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_DuplicateCodeSentinel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := groupstore.New(db)
	creator := primitive.NewObjectID()

	if _, err := s.Create(ctx, models.Group{Name: "One", InviteCode: "ABC123", CreatedBy: creator}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := s.Create(ctx, models.Group{Name: "Two", InviteCode: "ABC123", CreatedBy: creator})
	if !errors.Is(err, groupstore.ErrDuplicateInviteCode) {
		t.Errorf("expected ErrDuplicateInviteCode, got %v", err)
	}
}

func TestGetByCode_AndCodeExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := groupstore.New(db)
	g, err := s.Create(ctx, models.Group{Name: "Crew", InviteCode: "ABC123", CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.GetByCode(ctx, "ABC123")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if got.ID != g.ID {
		t.Errorf("GetByCode: got %s, want %s", got.ID.Hex(), g.ID.Hex())
	}

	exists, err := s.CodeExists(ctx, "ABC123")
	if err != nil || !exists {
		t.Errorf("CodeExists(ABC123): got %v/%v, want true", exists, err)
	}
	exists, err = s.CodeExists(ctx, "FFFFFF")
	if err != nil || exists {
		t.Errorf("CodeExists(FFFFFF): got %v/%v, want false", exists, err)
	}

	if _, err := s.GetByCode(ctx, "FFFFFF"); err != mongo.ErrNoDocuments {
		t.Errorf("GetByCode miss: got %v, want ErrNoDocuments", err)
	}
}

func TestDelete_ReturnsCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := groupstore.New(db)
	g, err := s.Create(ctx, models.Group{Name: "Crew", InviteCode: "ABC123", CreatedBy: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	n, err := s.Delete(ctx, g.ID)
	if err != nil || n != 1 {
		t.Errorf("first delete: got %d/%v, want 1/nil", n, err)
	}
	n, err = s.Delete(ctx, g.ID)
	if err != nil || n != 0 {
		t.Errorf("second delete: got %d/%v, want 0/nil", n, err)
	}
}
