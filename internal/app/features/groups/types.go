// internal/app/features/groups/types.go
package groups

import "github.com/dalemusser/grouphub/internal/domain/models"

// groupInput is the create/update payload. On update, an empty name keeps
// the current one; the policy fields always apply.
type groupInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	JoinType        string `json:"join_type"`
	PostPermission  string `json:"post_permission"`
	EditPermissions string `json:"edit_permissions"`
}

// groupDetail is the group view response: the group plus the caller's
// standing in it. Role is "owner", a membership role, or empty.
type groupDetail struct {
	models.Group
	Role        string `json:"role,omitempty"`
	MemberCount int    `json:"member_count"`
}
