// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Join types control how non-members become members of a group.
const (
	JoinOpen        = "open"    // anyone can join
	JoinTypeRequest = "request" // joining requires approval by an edit-authorized member
	JoinInvite      = "invite"  // only invited users can join
)

// Post permissions control who may add materials to a group's courses.
const (
	PostMembers    = "members"
	PostModerators = "moderators"
	PostAdmins     = "admins"
	PostOwner      = "owner"
)

// Edit permissions control who may manage memberships and join requests.
const (
	EditModerators = "moderators"
	EditAdmins     = "admins"
	EditOwner      = "owner"
)

// Membership roles. The owner is not a role: owner status is an identity
// check against Group.OwnerID, and the owner never holds a membership row
// in their own group.
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the three membership roles.
func ValidRole(role string) bool {
	return role == RoleMember || role == RoleModerator || role == RoleAdmin
}

// Group is the tenancy unit. Every policy decision starts from the group's
// join_type / post_permission / edit_permissions configuration.
type Group struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped; unique
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	JoinType        string `bson:"join_type" json:"join_type"`
	PostPermission  string `bson:"post_permission" json:"post_permission"`
	EditPermissions string `bson:"edit_permissions" json:"edit_permissions"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
