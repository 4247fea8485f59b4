// internal/app/policy/grouppolicy/grouppolicy.go

// Package grouppolicy decides what a user may do inside a group.
//
// Every function is a pure decision over (userID, group, membership
// snapshot); nothing here touches the database or caches results. Callers
// load the group and its memberships once per request and evaluate all
// checks against that one snapshot, so a decision can never straddle two
// different membership states.
//
// Authority model:
//   - The owner (Group.OwnerID) sits above every role and never holds a
//     membership row in their own group.
//   - Roles order admin > moderator > member.
//   - group.edit_permissions / group.post_permission select which roles
//     qualify; the "owner" setting admits no role at all.
package grouppolicy

import (
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsOwner reports whether userID is the group's owner.
func IsOwner(userID primitive.ObjectID, g models.Group) bool {
	return userID == g.OwnerID
}

// roleOf resolves userID's membership role from the snapshot.
func roleOf(userID primitive.ObjectID, members []models.GroupMembership) (string, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// IsMember reports whether userID is the owner or holds any membership
// role in the group. Read access (group detail, courses, materials) is
// gated on this, which is deliberately broader than post access.
func IsMember(userID primitive.ObjectID, g models.Group, members []models.GroupMembership) bool {
	if IsOwner(userID, g) {
		return true
	}
	_, ok := roleOf(userID, members)
	return ok
}

// CanEditMembers reports whether userID may manage memberships and join
// requests. The owner always may. Otherwise the user's role is tested
// against the group's edit_permissions setting; the "owner" setting admits
// no role, and a non-member never qualifies.
func CanEditMembers(userID primitive.ObjectID, g models.Group, members []models.GroupMembership) bool {
	if IsOwner(userID, g) {
		return true
	}
	role, ok := roleOf(userID, members)
	if !ok {
		return false
	}
	switch g.EditPermissions {
	case models.EditModerators:
		return role == models.RoleAdmin || role == models.RoleModerator
	case models.EditAdmins:
		return role == models.RoleAdmin
	case models.EditOwner:
		return false
	default:
		return false
	}
}

// CanPost reports whether userID may post materials into the group's
// courses, per the group's post_permission setting.
func CanPost(userID primitive.ObjectID, g models.Group, members []models.GroupMembership) bool {
	if IsOwner(userID, g) {
		return true
	}
	role, ok := roleOf(userID, members)
	if !ok {
		return false
	}
	switch g.PostPermission {
	case models.PostMembers:
		return role == models.RoleMember || role == models.RoleModerator || role == models.RoleAdmin
	case models.PostModerators:
		return role == models.RoleModerator || role == models.RoleAdmin
	case models.PostAdmins:
		return role == models.RoleAdmin
	case models.PostOwner:
		return false
	default:
		return false
	}
}

// IsGroupAdmin reports whether userID is the owner or holds the admin
// role. Course and label creation are gated on this.
func IsGroupAdmin(userID primitive.ObjectID, g models.Group, members []models.GroupMembership) bool {
	if IsOwner(userID, g) {
		return true
	}
	role, _ := roleOf(userID, members)
	return role == models.RoleAdmin
}

// CanRemoveMember reports whether userID may remove the target membership.
// The owner always may; otherwise the actor's own membership role must
// strictly outrank the target's, so peers can never remove each other.
func CanRemoveMember(userID primitive.ObjectID, g models.Group, members []models.GroupMembership, target models.GroupMembership) bool {
	if IsOwner(userID, g) {
		return true
	}
	role, ok := roleOf(userID, members)
	if !ok {
		return false
	}
	return Outranks(role, target.Role)
}
