// Package groupaccess loads the per-request snapshot that the policy
// packages evaluate: one group plus its full membership list. Handlers
// load the snapshot once and ask policy questions against it, so a single
// request sees one consistent view of the group.
package groupaccess

import (
	"context"

	"github.com/dalemusser/grouphub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/grouphub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrGroupNotFound is groupstore.ErrNotFound re-exported so callers need
// not import the store to branch on it.
var ErrGroupNotFound = groupstore.ErrNotFound

// Access is the snapshot for one (user, group) pair.
type Access struct {
	Group   models.Group
	Members []models.GroupMembership
	UserID  primitive.ObjectID
}

// Load fetches the group and its memberships.
func Load(ctx context.Context, db *mongo.Database, groupID, userID primitive.ObjectID) (Access, error) {
	g, err := groupstore.New(db).GetByID(ctx, groupID)
	if err != nil {
		return Access{}, err
	}
	members, err := membershipstore.New(db).ListByGroup(ctx, groupID)
	if err != nil {
		return Access{}, err
	}
	return Access{Group: g, Members: members, UserID: userID}, nil
}

func (a Access) IsOwner() bool {
	return grouppolicy.IsOwner(a.UserID, a.Group)
}

func (a Access) IsMemberOrOwner() bool {
	return grouppolicy.IsMember(a.UserID, a.Group, a.Members)
}

func (a Access) CanEditMembers() bool {
	return grouppolicy.CanEditMembers(a.UserID, a.Group, a.Members)
}

func (a Access) CanPost() bool {
	return grouppolicy.CanPost(a.UserID, a.Group, a.Members)
}

func (a Access) IsGroupAdmin() bool {
	return grouppolicy.IsGroupAdmin(a.UserID, a.Group, a.Members)
}

func (a Access) CanRemoveMember(target models.GroupMembership) bool {
	return grouppolicy.CanRemoveMember(a.UserID, a.Group, a.Members, target)
}

// MembershipOf returns the snapshot row for a user, if any.
func (a Access) MembershipOf(userID primitive.ObjectID) (models.GroupMembership, bool) {
	for _, m := range a.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return models.GroupMembership{}, false
}
