// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Options controls policy-dependent indexes.
type Options struct {
	// SingleVote adds a unique (poll_id, user_id) index on votes so a
	// second vote on the same poll fails at the store. When off, duplicate
	// votes are permitted and only the lookup index is created.
	SingleVote bool
}

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, opts Options) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensurePolls(ctx, db); err != nil {
		problems = append(problems, "polls: "+err.Error())
	}
	if err := ensurePollOptions(ctx, db); err != nil {
		problems = append(problems, "poll_options: "+err.Error())
	}
	if err := ensureVotes(ctx, db, opts.SingleVote); err != nil {
		problems = append(problems, "votes: "+err.Error())
	}
	if err := ensureActivities(ctx, db); err != nil {
		problems = append(problems, "activities: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		unique := false
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}

		start := time.Now()
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Bool("unique", unique),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users.
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("groups")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Invite codes are globally unique; the directory's retry loop
		// leans on this index to resolve generation races.
		{
			Keys:    bson.D{{Key: "invite_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_groups_invitecode"),
		},
		// Name prefix search + stable sort
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_groups_nameci__id"),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_memberships")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Uniqueness: exactly one membership per (user, group).
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "group_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_gm_user_group"),
		},
		// Fast: list group members (admins first, stable tiebreak)
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "is_admin", Value: -1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_gm_group_admin_user"),
		},
	})
}

func ensurePolls(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("polls")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// "Most recent" per group is ordered by expires_at descending.
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "expires_at", Value: -1}},
			Options: options.Index().SetName("idx_polls_group_expires"),
		},
	})
}

func ensurePollOptions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("poll_options")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "poll_id", Value: 1}},
			Options: options.Index().SetName("idx_options_poll"),
		},
	})
}

func ensureVotes(ctx context.Context, db *mongo.Database, singleVote bool) error {
	c := db.Collection("votes")
	models := []mongo.IndexModel{
		// Tally reads group by option within a poll.
		{
			Keys:    bson.D{{Key: "poll_id", Value: 1}, {Key: "option_id", Value: 1}},
			Options: options.Index().SetName("idx_votes_poll_option"),
		},
	}
	if singleVote {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "poll_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_votes_poll_user"),
		})
	}
	return ensureIndexSet(ctx, c, models)
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("activities")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Default search ordering: most-recently-created first.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activities_created"),
		},
		{
			Keys:    bson.D{{Key: "category_ci", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_activities_categoryci_created"),
		},
	})
}
