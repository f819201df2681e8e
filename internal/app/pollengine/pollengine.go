// internal/app/pollengine/pollengine.go

// Package pollengine owns the poll lifecycle: creation (question fanned
// out into options inside one transaction), vote casting with its ordered
// validation chain, lazy expiration, and the read-side assembly of polls
// with options, activities and tallies.
package pollengine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/huddleup/huddle/internal/app/catalog"
	groupstore "github.com/huddleup/huddle/internal/app/store/groups"
	membershipstore "github.com/huddleup/huddle/internal/app/store/memberships"
	pollstore "github.com/huddleup/huddle/internal/app/store/polls"
	userstore "github.com/huddleup/huddle/internal/app/store/users"
	votestore "github.com/huddleup/huddle/internal/app/store/votes"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/txn"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options configures engine policy.
type Options struct {
	// SingleVote rejects a second vote per (poll, user) with a conflict.
	// Off restores the legacy last-write-wins-free behavior where
	// duplicates accumulate.
	SingleVote bool

	// Now supplies the clock for expiry checks. Defaults to time.Now;
	// tests inject a fixed clock.
	Now func() time.Time
}

type Engine struct {
	db         *mongo.Database
	polls      *pollstore.Store
	votes      *votestore.Store
	users      *userstore.Store
	groups     *groupstore.Store
	members    *membershipstore.Store
	catalog    *catalog.Catalog
	log        *zap.Logger
	now        func() time.Time
	singleVote bool
}

func New(db *mongo.Database, cat *catalog.Catalog, logger *zap.Logger, opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		db:         db,
		polls:      pollstore.New(db),
		votes:      votestore.New(db),
		users:      userstore.New(db),
		groups:     groupstore.New(db),
		members:    membershipstore.New(db),
		catalog:    cat,
		log:        logger,
		now:        now,
		singleVote: opts.SingleVote,
	}
}

// PollPatch enumerates the mutable poll fields.
type PollPatch struct {
	Question  *string
	ExpiresAt *time.Time
}

// OptionDetail is a poll option joined with its source activity and tally.
type OptionDetail struct {
	models.PollOption
	Activity  *models.Activity `json:"activity,omitempty"`
	VoteCount int              `json:"vote_count"`
}

// PersonRef carries the display fields of a referenced user.
type PersonRef struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
}

// GroupRef carries the display fields of the owning group.
type GroupRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// PollDetail is the read-side assembly of a poll.
type PollDetail struct {
	models.Poll
	Options   []OptionDetail `json:"options"`
	CreatedBy PersonRef      `json:"created_by_user"`
	Group     GroupRef       `json:"group"`
	Expired   bool           `json:"expired"`
}

// VoteReceipt confirms a cast vote.
type VoteReceipt struct {
	ReceiptID string             `json:"receipt_id"`
	PollID    primitive.ObjectID `json:"poll_id"`
	OptionID  primitive.ObjectID `json:"option_id"`
	UserID    primitive.ObjectID `json:"user_id"`
	CastAt    time.Time          `json:"cast_at"`
}

// Create makes a poll for a group the creator belongs to. The selected
// activity IDs are resolved through the catalog; unknown IDs are dropped
// without error, so the option set may be smaller than requested. Poll and
// options are inserted in one transaction: readers either see no poll or
// the poll with its full option set, never a partial one.
func (e *Engine) Create(ctx context.Context, question string, groupID primitive.ObjectID, expiresAt time.Time, activityIDs []primitive.ObjectID, creatorID primitive.ObjectID) (PollDetail, error) {
	isMember, err := e.members.Exists(ctx, groupID, creatorID)
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to check membership")
	}
	if !isMember {
		return PollDetail{}, apperr.New(apperr.Forbidden, "you are not a member of this group")
	}

	if !expiresAt.After(e.now()) {
		return PollDetail{}, apperr.New(apperr.BadRequest, "poll expiry must be in the future")
	}

	activities, err := e.catalog.FindManyByIDs(ctx, activityIDs)
	if err != nil {
		return PollDetail{}, err
	}

	var created models.Poll
	err = txn.Run(ctx, e.db, e.log, func(ctx context.Context) error {
		p, err := e.polls.Create(ctx, models.Poll{
			Question:  question,
			GroupID:   groupID,
			CreatedBy: creatorID,
			ExpiresAt: expiresAt.UTC(),
		})
		if err != nil {
			return err
		}
		opts := make([]models.PollOption, 0, len(activities))
		for _, a := range activities {
			opts = append(opts, models.PollOption{
				PollID:     p.ID,
				ActivityID: a.ID,
				Text:       a.Name, // snapshot; later catalog edits do not propagate
			})
		}
		if err := e.polls.InsertOptions(ctx, opts); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to create poll")
	}

	e.log.Info("poll created",
		zap.String("poll_id", created.ID.Hex()),
		zap.String("group_id", groupID.Hex()),
		zap.Int("options", len(activities)))

	return e.FindByID(ctx, created.ID)
}

// Vote casts userID's vote for an option of a poll. The validation chain
// is ordered and short-circuits: existence, expiry, option/poll pairing,
// membership, then insert. The membership check is not transactional with
// the insert; a membership revoked mid-flight can race past it, which is
// an accepted weakness.
func (e *Engine) Vote(ctx context.Context, pollID, optionID, userID primitive.ObjectID) (VoteReceipt, error) {
	poll, err := e.polls.GetByID(ctx, pollID)
	if err != nil && err != mongo.ErrNoDocuments {
		return VoteReceipt{}, apperr.Wrap(apperr.Internal, err, "failed to load poll")
	}
	userExists := false
	if err == nil {
		userExists, err = e.users.Exists(ctx, userID)
		if err != nil {
			return VoteReceipt{}, apperr.Wrap(apperr.Internal, err, "failed to check user")
		}
	}
	if poll.ID.IsZero() || !userExists {
		return VoteReceipt{}, apperr.New(apperr.NotFound, "the poll, option or user was not found")
	}

	if poll.IsExpired(e.now()) {
		return VoteReceipt{}, apperr.New(apperr.BadRequest, "this poll has already expired")
	}

	if _, err := e.polls.GetOption(ctx, pollID, optionID); err != nil {
		if err == mongo.ErrNoDocuments {
			return VoteReceipt{}, apperr.New(apperr.BadRequest,
				"poll option %q does not belong to poll %q", optionID.Hex(), pollID.Hex())
		}
		return VoteReceipt{}, apperr.Wrap(apperr.Internal, err, "failed to load poll option")
	}

	isMember, err := e.members.Exists(ctx, poll.GroupID, userID)
	if err != nil {
		return VoteReceipt{}, apperr.Wrap(apperr.Internal, err, "failed to check membership")
	}
	if !isMember {
		return VoteReceipt{}, apperr.New(apperr.Forbidden, "you must be a member of this group to vote on this poll")
	}

	v, err := e.votes.Add(ctx, models.Vote{
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
	})
	if err != nil {
		if e.singleVote && errors.Is(err, votestore.ErrDuplicateVote) {
			return VoteReceipt{}, apperr.Wrap(apperr.Conflict, err, "you have already voted on this poll")
		}
		return VoteReceipt{}, apperr.Wrap(apperr.Internal, err, "failed to record vote")
	}

	return VoteReceipt{
		ReceiptID: uuid.NewString(),
		PollID:    v.PollID,
		OptionID:  v.OptionID,
		UserID:    v.UserID,
		CastAt:    v.CreatedAt,
	}, nil
}

// FindByID assembles a poll with its options, each option's source
// activity and tally, and the creator's and group's display fields.
func (e *Engine) FindByID(ctx context.Context, pollID primitive.ObjectID) (PollDetail, error) {
	poll, err := e.polls.GetByID(ctx, pollID)
	if err == mongo.ErrNoDocuments {
		return PollDetail{}, apperr.New(apperr.NotFound, "poll not found")
	}
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load poll")
	}
	return e.assemble(ctx, poll)
}

// FindMostRecentByGroup returns the group's poll with the latest expiry.
// "Most recent" follows the expiry ordering, not creation time, so the
// poll whose window closes last wins.
func (e *Engine) FindMostRecentByGroup(ctx context.Context, groupID primitive.ObjectID) (PollDetail, error) {
	poll, err := e.polls.MostRecentByGroup(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		return PollDetail{}, apperr.New(apperr.NotFound, "group has no polls")
	}
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load most recent poll")
	}
	return e.assemble(ctx, poll)
}

func (e *Engine) assemble(ctx context.Context, poll models.Poll) (PollDetail, error) {
	opts, err := e.polls.OptionsByPoll(ctx, poll.ID)
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load poll options")
	}

	activityIDs := make([]primitive.ObjectID, 0, len(opts))
	for _, o := range opts {
		activityIDs = append(activityIDs, o.ActivityID)
	}
	activities, err := e.catalog.FindManyByIDs(ctx, activityIDs)
	if err != nil {
		return PollDetail{}, err
	}
	actByID := make(map[primitive.ObjectID]models.Activity, len(activities))
	for _, a := range activities {
		actByID[a.ID] = a
	}

	tally, err := e.votes.TallyByPoll(ctx, poll.ID)
	if err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to tally votes")
	}

	detail := PollDetail{
		Poll:    poll,
		Options: make([]OptionDetail, 0, len(opts)),
		Expired: poll.IsExpired(e.now()),
	}
	for _, o := range opts {
		od := OptionDetail{PollOption: o, VoteCount: tally[o.ID]}
		if a, ok := actByID[o.ActivityID]; ok {
			od.Activity = &a
		}
		detail.Options = append(detail.Options, od)
	}

	if creator, err := e.users.GetByID(ctx, poll.CreatedBy); err == nil {
		detail.CreatedBy = PersonRef{ID: creator.ID, FirstName: creator.FirstName, LastName: creator.LastName}
	} else if err != mongo.ErrNoDocuments {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load poll creator")
	}

	if g, err := e.groups.GetByID(ctx, poll.GroupID); err == nil {
		detail.Group = GroupRef{ID: g.ID, Name: g.Name}
	} else if err != mongo.ErrNoDocuments {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load poll group")
	}

	return detail, nil
}

// GroupOf returns the ID of the group owning pollID. Handlers use it to
// run admin checks before mutating a poll.
func (e *Engine) GroupOf(ctx context.Context, pollID primitive.ObjectID) (primitive.ObjectID, error) {
	poll, err := e.polls.GetByID(ctx, pollID)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, apperr.New(apperr.NotFound, "poll not found")
	}
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.Internal, err, "failed to load poll")
	}
	return poll.GroupID, nil
}

// Update applies the patch to a poll's mutable fields.
func (e *Engine) Update(ctx context.Context, pollID primitive.ObjectID, patch PollPatch) (PollDetail, error) {
	if _, err := e.polls.GetByID(ctx, pollID); err != nil {
		if err == mongo.ErrNoDocuments {
			return PollDetail{}, apperr.New(apperr.NotFound, "poll not found")
		}
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load poll")
	}

	set := bson.M{}
	if patch.Question != nil {
		set["question"] = *patch.Question
	}
	if patch.ExpiresAt != nil {
		set["expires_at"] = patch.ExpiresAt.UTC()
	}
	if err := e.polls.Update(ctx, pollID, set); err != nil {
		return PollDetail{}, apperr.Wrap(apperr.Internal, err, "failed to update poll")
	}

	return e.FindByID(ctx, pollID)
}

// Delete removes a poll along with its options and votes. Like Update it
// pre-checks existence and reports a typed not-found.
func (e *Engine) Delete(ctx context.Context, pollID primitive.ObjectID) error {
	if _, err := e.polls.GetByID(ctx, pollID); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.New(apperr.NotFound, "poll not found")
		}
		return apperr.Wrap(apperr.Internal, err, "failed to load poll")
	}

	err := txn.Run(ctx, e.db, e.log, func(ctx context.Context) error {
		if _, err := e.votes.DeleteByPolls(ctx, []primitive.ObjectID{pollID}); err != nil {
			return err
		}
		_, err := e.polls.Delete(ctx, pollID)
		return err
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to delete poll")
	}

	e.log.Info("poll deleted", zap.String("poll_id", pollID.Hex()))
	return nil
}
