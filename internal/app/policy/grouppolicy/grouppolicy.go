// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"context"

	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/authn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsMember returns true if the given user holds a membership in the given
// group according to the authoritative group_memberships collection.
func IsMember(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	c := db.Collection("group_memberships")
	n, err := c.CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsGroupAdmin returns true if the given user holds an admin membership in
// the given group.
func IsGroupAdmin(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (bool, error) {
	c := db.Collection("group_memberships")
	n, err := c.CountDocuments(ctx, bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"is_admin": true,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RequireAdmin is the single admin gate for group-mutating operations.
// Site admins always pass; everyone else must hold an admin membership in
// the group. Returns apperr.Forbidden when the caller lacks standing, and
// a wrapped apperr.Internal when the check itself fails.
func RequireAdmin(ctx context.Context, db *mongo.Database, p authn.Principal, groupID primitive.ObjectID) error {
	if p.IsSiteAdmin() {
		return nil
	}
	ok, err := IsGroupAdmin(ctx, db, groupID, p.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to check group admin standing")
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "you must be an admin of this group")
	}
	return nil
}

// RequireMember mirrors RequireAdmin for operations any member may
// perform (creating polls, voting).
func RequireMember(ctx context.Context, db *mongo.Database, p authn.Principal, groupID primitive.ObjectID) error {
	ok, err := IsMember(ctx, db, groupID, p.ID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to check group membership")
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "you are not a member of this group")
	}
	return nil
}
