// internal/app/directory/directory.go

// Package directory is the group membership engine: invite-code
// generation, group creation, join-by-code, leave, and admin-gated
// update/delete. It is the sole mutator of groups and group_memberships.
package directory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	groupstore "github.com/huddleup/huddle/internal/app/store/groups"
	membershipstore "github.com/huddleup/huddle/internal/app/store/memberships"
	pollstore "github.com/huddleup/huddle/internal/app/store/polls"
	userstore "github.com/huddleup/huddle/internal/app/store/users"
	votestore "github.com/huddleup/huddle/internal/app/store/votes"
	"github.com/huddleup/huddle/internal/app/system/apperr"
	"github.com/huddleup/huddle/internal/app/system/invitecode"
	"github.com/huddleup/huddle/internal/app/system/txn"
	"github.com/huddleup/huddle/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds the invite-code probing loop. With 21^6 possible
// codes the loop terminates on the first try in practice; the bound exists
// so a pathological store state fails closed instead of spinning.
const maxCodeAttempts = 5

type Directory struct {
	db      *mongo.Database
	groups  *groupstore.Store
	members *membershipstore.Store
	polls   *pollstore.Store
	votes   *votestore.Store
	users   *userstore.Store
	log     *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func New(db *mongo.Database, logger *zap.Logger) *Directory {
	return &Directory{
		db:      db,
		groups:  groupstore.New(db),
		members: membershipstore.New(db),
		polls:   pollstore.New(db),
		votes:   votestore.New(db),
		users:   userstore.New(db),
		log:     logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GroupPatch enumerates the mutable group fields. The invite code and
// creator are immutable.
type GroupPatch struct {
	Name *string
}

// MemberInfo is a membership joined with the user's display fields.
type MemberInfo struct {
	models.GroupMembership
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// GroupDetail is a group with its members and polls, as read by clients.
type GroupDetail struct {
	models.Group
	Members []MemberInfo  `json:"members"`
	Polls   []models.Poll `json:"polls"`
}

func (d *Directory) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		d.mu.Lock()
		code := invitecode.Generate(d.rng, invitecode.Alphabet, invitecode.Length)
		d.mu.Unlock()

		exists, err := d.groups.CodeExists(ctx, code)
		if err != nil {
			return "", apperr.Wrap(apperr.Internal, err, "failed to probe invite code")
		}
		if !exists {
			return code, nil
		}
		d.log.Warn("invite code collision, retrying",
			zap.String("code", code),
			zap.Int("attempt", attempt+1))
	}
	return "", apperr.New(apperr.Internal, "could not generate a free invite code after %d attempts", maxCodeAttempts)
}

// Create makes a new group with a fresh invite code and installs the
// creator as its first admin member. Group and membership are inserted in
// one transaction so no reader observes an adminless group.
func (d *Directory) Create(ctx context.Context, name string, creatorID primitive.ObjectID) (models.Group, error) {
	code, err := d.generateCode(ctx)
	if err != nil {
		return models.Group{}, err
	}

	var created models.Group
	err = txn.Run(ctx, d.db, d.log, func(ctx context.Context) error {
		g, err := d.groups.Create(ctx, models.Group{
			Name:       name,
			InviteCode: code,
			CreatedBy:  creatorID,
		})
		if err != nil {
			return err
		}
		if _, err := d.members.Add(ctx, g.ID, creatorID, true); err != nil {
			return err
		}
		created = g
		return nil
	})
	if err != nil {
		// The pre-check raced a concurrent creation: the unique index on
		// invite_code fired anyway. Surface it as a conflict; the store's
		// duplicate-key signal is not assumed to have only this cause.
		if errors.Is(err, groupstore.ErrDuplicateInviteCode) {
			return models.Group{}, apperr.Wrap(apperr.Conflict, err, "invite code already exists")
		}
		return models.Group{}, apperr.Wrap(apperr.Internal, err, "failed to create group")
	}

	d.log.Info("group created",
		zap.String("group_id", created.ID.Hex()),
		zap.String("creator_id", creatorID.Hex()))
	return created, nil
}

// Join adds userID to the group holding the invite code, as a non-admin.
func (d *Directory) Join(ctx context.Context, userID primitive.ObjectID, code string) (models.GroupMembership, error) {
	g, err := d.groups.GetByCode(ctx, code)
	if err == mongo.ErrNoDocuments {
		return models.GroupMembership{}, apperr.New(apperr.NotFound, "group not found")
	}
	if err != nil {
		return models.GroupMembership{}, apperr.Wrap(apperr.Internal, err, "failed to look up group by code")
	}

	exists, err := d.members.Exists(ctx, g.ID, userID)
	if err != nil {
		return models.GroupMembership{}, apperr.Wrap(apperr.Internal, err, "failed to check membership")
	}
	if exists {
		return models.GroupMembership{}, apperr.New(apperr.Conflict, "user already a member")
	}

	m, err := d.members.Add(ctx, g.ID, userID, false)
	if errors.Is(err, membershipstore.ErrDuplicateMembership) {
		// Pre-check raced a concurrent join; same outcome.
		return models.GroupMembership{}, apperr.Wrap(apperr.Conflict, err, "user already a member")
	}
	if err != nil {
		return models.GroupMembership{}, apperr.Wrap(apperr.Internal, err, "failed to join group")
	}
	return m, nil
}

// Leave removes userID's membership. Leaving as the last admin is allowed:
// the group may end up with zero admins, which only a site admin can then
// mutate.
func (d *Directory) Leave(ctx context.Context, userID, groupID primitive.ObjectID) error {
	m, err := d.members.Get(ctx, groupID, userID)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "member not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to look up membership")
	}

	if m.IsAdmin {
		admins, err := d.members.CountAdmins(ctx, groupID)
		if err == nil && admins == 1 {
			d.log.Warn("last admin leaving group",
				zap.String("group_id", groupID.Hex()),
				zap.String("user_id", userID.Hex()))
		}
	}

	n, err := d.members.Remove(ctx, groupID, userID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to leave group")
	}
	if n == 0 {
		// Concurrent leave already removed it.
		return apperr.New(apperr.NotFound, "member not found")
	}
	return nil
}

// FindGroup assembles a group with its members (joined with user display
// fields) and polls.
func (d *Directory) FindGroup(ctx context.Context, groupID primitive.ObjectID) (GroupDetail, error) {
	g, err := d.groups.GetByID(ctx, groupID)
	if err == mongo.ErrNoDocuments {
		return GroupDetail{}, apperr.New(apperr.NotFound, "group not found")
	}
	if err != nil {
		return GroupDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load group")
	}

	memberships, err := d.members.ListByGroup(ctx, groupID)
	if err != nil {
		return GroupDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load memberships")
	}

	userIDs := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	users, err := d.users.FindManyByIDs(ctx, userIDs)
	if err != nil {
		return GroupDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load members")
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		info := MemberInfo{GroupMembership: m}
		if u, ok := byID[m.UserID]; ok {
			info.FirstName = u.FirstName
			info.LastName = u.LastName
			info.Email = u.Email
		}
		members = append(members, info)
	}

	polls, err := d.polls.ListByGroup(ctx, groupID)
	if err != nil {
		return GroupDetail{}, apperr.Wrap(apperr.Internal, err, "failed to load polls")
	}

	return GroupDetail{Group: g, Members: members, Polls: polls}, nil
}

// UpdateGroup applies the patch. Admin standing is enforced at the
// boundary by grouppolicy.RequireAdmin, not here.
func (d *Directory) UpdateGroup(ctx context.Context, groupID primitive.ObjectID, patch GroupPatch) (models.Group, error) {
	if _, err := d.groups.GetByID(ctx, groupID); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.New(apperr.NotFound, "group not found")
		}
		return models.Group{}, apperr.Wrap(apperr.Internal, err, "failed to load group")
	}

	if patch.Name != nil {
		if err := d.groups.UpdateName(ctx, groupID, *patch.Name); err != nil {
			return models.Group{}, apperr.Wrap(apperr.Internal, err, "failed to update group")
		}
	}

	g, err := d.groups.GetByID(ctx, groupID)
	if err != nil {
		return models.Group{}, apperr.Wrap(apperr.Internal, err, "failed to reload group")
	}
	return g, nil
}

// DeleteGroup removes the group and everything scoped to it: memberships,
// polls, options and votes.
func (d *Directory) DeleteGroup(ctx context.Context, groupID primitive.ObjectID) error {
	if _, err := d.groups.GetByID(ctx, groupID); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.New(apperr.NotFound, "group not found")
		}
		return apperr.Wrap(apperr.Internal, err, "failed to load group")
	}

	err := txn.Run(ctx, d.db, d.log, func(ctx context.Context) error {
		pollIDs, err := d.polls.DeleteByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if _, err := d.votes.DeleteByPolls(ctx, pollIDs); err != nil {
			return err
		}
		if _, err := d.members.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		_, err = d.groups.Delete(ctx, groupID)
		return err
	})
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to delete group")
	}

	d.log.Info("group deleted", zap.String("group_id", groupID.Hex()))
	return nil
}
