// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()

	user := models.User{
		ID:        primitive.NewObjectID(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a test group with the given name and invite code.
func (f *Fixtures) CreateGroup(ctx context.Context, name, inviteCode string, creatorID primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		InviteCode: inviteCode,
		CreatedBy:  creatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership creates a membership record linking a user to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, groupID primitive.ObjectID, isAdmin bool) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		GroupID:  groupID,
		UserID:   userID,
		IsAdmin:  isAdmin,
		JoinedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateActivity creates a test activity at the given coordinates.
func (f *Fixtures) CreateActivity(ctx context.Context, name, category string, lat, lon float64) models.Activity {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Activity{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        text.Fold(name),
		Description:   "Test activity description",
		DescriptionCI: text.Fold("Test activity description"),
		Latitude:      lat,
		Longitude:     lon,
		Category:      category,
		CategoryCI:    text.Fold(category),
		Rating:        3,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("activities").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return a
}

// CreatePoll creates a test poll in the given group.
func (f *Fixtures) CreatePoll(ctx context.Context, groupID, createdBy primitive.ObjectID, question string, expiresAt time.Time) models.Poll {
	f.t.Helper()

	poll := models.Poll{
		ID:        primitive.NewObjectID(),
		Question:  question,
		GroupID:   groupID,
		CreatedBy: createdBy,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("polls").InsertOne(ctx, poll); err != nil {
		f.t.Fatalf("failed to create test poll: %v", err)
	}
	return poll
}

// CreatePollOption creates an option on a poll referencing an activity.
func (f *Fixtures) CreatePollOption(ctx context.Context, pollID, activityID primitive.ObjectID, textLabel string) models.PollOption {
	f.t.Helper()

	opt := models.PollOption{
		ID:         primitive.NewObjectID(),
		PollID:     pollID,
		ActivityID: activityID,
		Text:       textLabel,
	}

	if _, err := f.db.Collection("poll_options").InsertOne(ctx, opt); err != nil {
		f.t.Fatalf("failed to create test poll option: %v", err)
	}
	return opt
}

// CreateVote records a vote directly, bypassing the engine's checks.
func (f *Fixtures) CreateVote(ctx context.Context, pollID, optionID, userID primitive.ObjectID) models.Vote {
	f.t.Helper()

	v := models.Vote{
		ID:        primitive.NewObjectID(),
		PollID:    pollID,
		OptionID:  optionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("votes").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test vote: %v", err)
	}
	return v
}
