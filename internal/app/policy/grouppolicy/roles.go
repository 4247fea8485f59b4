// internal/app/policy/grouppolicy/roles.go
package grouppolicy

import "github.com/dalemusser/grouphub/internal/domain/models"

// Rank returns the position of a membership role in the total order
// admin > moderator > member. Unknown roles rank below member so they
// never grant authority.
func Rank(role string) int {
	switch role {
	case models.RoleAdmin:
		return 3
	case models.RoleModerator:
		return 2
	case models.RoleMember:
		return 1
	default:
		return 0
	}
}

// Outranks reports whether role a is strictly higher than role b.
// Equal roles never outrank each other. The owner is not a role value and
// is never compared here; owner checks are identity comparisons against
// Group.OwnerID (see CanRemoveMember).
func Outranks(a, b string) bool {
	return Rank(a) > Rank(b)
}
