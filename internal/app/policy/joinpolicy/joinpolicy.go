// internal/app/policy/joinpolicy/joinpolicy.go

// Package joinpolicy holds the membership state machine: how a user moves
// from non-member to pending-request to member, and how pending requests
// resolve. Like grouppolicy, everything is a pure decision; the stores
// apply the resulting transition and the unique (group_id, user_id)
// indexes serialize concurrent attempts.
package joinpolicy

import "github.com/dalemusser/grouphub/internal/domain/models"

// Outcome is what a join attempt should do.
type Outcome int

const (
	// CreateMembership inserts a membership row with role "member" now.
	CreateMembership Outcome = iota
	// CreatePending inserts a join request awaiting approval.
	CreatePending
	// Deny rejects the attempt with a permission failure (invite-only).
	Deny
	// Invalid rejects the attempt as a validation failure (bad join type).
	Invalid
)

// Join-request resolution actions.
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// DecideJoin resolves a join attempt against the group's join_type.
// actorCanEdit is the grouppolicy.CanEditMembers decision for the acting
// user: edit-authorized actors bypass the join flow and add the target
// directly, whatever the join type. The caller has already rejected
// attempts to add the group's owner.
func DecideJoin(g models.Group, actorCanEdit bool) Outcome {
	if actorCanEdit {
		return CreateMembership
	}
	switch g.JoinType {
	case models.JoinOpen:
		return CreateMembership
	case models.JoinTypeRequest:
		return CreatePending
	case models.JoinInvite:
		return Deny
	default:
		return Invalid
	}
}

// ValidAction reports whether action is a recognized request resolution.
func ValidAction(action string) bool {
	return action == ActionAccept || action == ActionDecline
}
