package grouppolicy_test

import (
	"testing"

	"github.com/dalemusser/grouphub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func group(owner primitive.ObjectID, post, edit string) models.Group {
	return models.Group{
		ID:              primitive.NewObjectID(),
		OwnerID:         owner,
		Name:            "Test Group",
		JoinType:        models.JoinOpen,
		PostPermission:  post,
		EditPermissions: edit,
	}
}

func membership(g models.Group, userID primitive.ObjectID, role string) models.GroupMembership {
	return models.GroupMembership{
		ID:      primitive.NewObjectID(),
		GroupID: g.ID,
		UserID:  userID,
		Role:    role,
	}
}

func TestOutranks(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{models.RoleAdmin, models.RoleModerator, true},
		{models.RoleAdmin, models.RoleMember, true},
		{models.RoleModerator, models.RoleMember, true},
		{models.RoleModerator, models.RoleAdmin, false},
		{models.RoleMember, models.RoleMember, false},
		{models.RoleAdmin, models.RoleAdmin, false},
		{models.RoleMember, models.RoleAdmin, false},
		{"bogus", models.RoleMember, false},
		{models.RoleMember, "bogus", true},
	}
	for _, c := range cases {
		if got := grouppolicy.Outranks(c.a, c.b); got != c.want {
			t.Errorf("Outranks(%q, %q): got %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestIsOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	g := group(owner, models.PostMembers, models.EditAdmins)

	if !grouppolicy.IsOwner(owner, g) {
		t.Error("owner not recognized")
	}
	if grouppolicy.IsOwner(other, g) {
		t.Error("non-owner recognized as owner")
	}
}

// The owner passes CanEditMembers under every edit_permissions value; a
// member-role user passes under none of them.
func TestCanEditMembers_OwnerAndMemberAcrossPolicies(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()

	for _, edit := range []string{models.EditModerators, models.EditAdmins, models.EditOwner} {
		g := group(owner, models.PostMembers, edit)
		members := []models.GroupMembership{membership(g, member, models.RoleMember)}

		if !grouppolicy.CanEditMembers(owner, g, members) {
			t.Errorf("edit_permissions=%q: owner denied", edit)
		}
		if grouppolicy.CanEditMembers(member, g, members) {
			t.Errorf("edit_permissions=%q: member-role user allowed", edit)
		}
	}
}

func TestCanEditMembers_RoleMatrix(t *testing.T) {
	owner := primitive.NewObjectID()
	cases := []struct {
		edit string
		role string
		want bool
	}{
		{models.EditModerators, models.RoleAdmin, true},
		{models.EditModerators, models.RoleModerator, true},
		{models.EditModerators, models.RoleMember, false},
		{models.EditAdmins, models.RoleAdmin, true},
		{models.EditAdmins, models.RoleModerator, false},
		{models.EditOwner, models.RoleAdmin, false},
		{models.EditOwner, models.RoleModerator, false},
	}
	for _, c := range cases {
		g := group(owner, models.PostMembers, c.edit)
		userID := primitive.NewObjectID()
		members := []models.GroupMembership{membership(g, userID, c.role)}
		if got := grouppolicy.CanEditMembers(userID, g, members); got != c.want {
			t.Errorf("edit_permissions=%q role=%q: got %v, want %v", c.edit, c.role, got, c.want)
		}
	}
}

func TestCanEditMembers_NonMember(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	g := group(owner, models.PostMembers, models.EditModerators)

	if grouppolicy.CanEditMembers(stranger, g, nil) {
		t.Error("non-member allowed to edit members")
	}
}

func TestCanPost_RoleMatrix(t *testing.T) {
	owner := primitive.NewObjectID()
	cases := []struct {
		post string
		role string
		want bool
	}{
		{models.PostMembers, models.RoleMember, true},
		{models.PostMembers, models.RoleModerator, true},
		{models.PostMembers, models.RoleAdmin, true},
		{models.PostModerators, models.RoleMember, false},
		{models.PostModerators, models.RoleModerator, true},
		{models.PostModerators, models.RoleAdmin, true},
		{models.PostAdmins, models.RoleMember, false},
		{models.PostAdmins, models.RoleModerator, false},
		{models.PostAdmins, models.RoleAdmin, true},
		{models.PostOwner, models.RoleAdmin, false},
		{models.PostOwner, models.RoleMember, false},
	}
	for _, c := range cases {
		g := group(owner, c.post, models.EditAdmins)
		userID := primitive.NewObjectID()
		members := []models.GroupMembership{membership(g, userID, c.role)}
		if got := grouppolicy.CanPost(userID, g, members); got != c.want {
			t.Errorf("post_permission=%q role=%q: got %v, want %v", c.post, c.role, got, c.want)
		}
	}
}

func TestCanPost_OwnerAlways(t *testing.T) {
	owner := primitive.NewObjectID()
	for _, post := range []string{models.PostMembers, models.PostModerators, models.PostAdmins, models.PostOwner} {
		g := group(owner, post, models.EditAdmins)
		if !grouppolicy.CanPost(owner, g, nil) {
			t.Errorf("post_permission=%q: owner denied", post)
		}
	}
}

func TestCanPost_NonMember(t *testing.T) {
	owner := primitive.NewObjectID()
	g := group(owner, models.PostMembers, models.EditAdmins)
	if grouppolicy.CanPost(primitive.NewObjectID(), g, nil) {
		t.Error("non-member allowed to post")
	}
}

func TestIsGroupAdmin(t *testing.T) {
	owner := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	mod := primitive.NewObjectID()
	g := group(owner, models.PostMembers, models.EditAdmins)
	members := []models.GroupMembership{
		membership(g, admin, models.RoleAdmin),
		membership(g, mod, models.RoleModerator),
	}

	if !grouppolicy.IsGroupAdmin(owner, g, members) {
		t.Error("owner not group admin")
	}
	if !grouppolicy.IsGroupAdmin(admin, g, members) {
		t.Error("admin-role member not group admin")
	}
	if grouppolicy.IsGroupAdmin(mod, g, members) {
		t.Error("moderator treated as group admin")
	}
	if grouppolicy.IsGroupAdmin(primitive.NewObjectID(), g, members) {
		t.Error("stranger treated as group admin")
	}
}

func TestCanRemoveMember(t *testing.T) {
	owner := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	modA := primitive.NewObjectID()
	modB := primitive.NewObjectID()
	member := primitive.NewObjectID()

	g := group(owner, models.PostMembers, models.EditModerators)
	members := []models.GroupMembership{
		membership(g, admin, models.RoleAdmin),
		membership(g, modA, models.RoleModerator),
		membership(g, modB, models.RoleModerator),
		membership(g, member, models.RoleMember),
	}
	byUser := func(id primitive.ObjectID) models.GroupMembership {
		for _, m := range members {
			if m.UserID == id {
				return m
			}
		}
		t.Fatalf("no membership for %s", id.Hex())
		return models.GroupMembership{}
	}

	// Owner removes anyone, including admins.
	if !grouppolicy.CanRemoveMember(owner, g, members, byUser(admin)) {
		t.Error("owner cannot remove admin")
	}
	// Admin outranks moderator.
	if !grouppolicy.CanRemoveMember(admin, g, members, byUser(modA)) {
		t.Error("admin cannot remove moderator")
	}
	// Moderator does not outrank a peer moderator.
	if grouppolicy.CanRemoveMember(modA, g, members, byUser(modB)) {
		t.Error("moderator removed a peer moderator")
	}
	// Member outranks nobody.
	if grouppolicy.CanRemoveMember(member, g, members, byUser(modA)) {
		t.Error("member removed a moderator")
	}
	// Moderator never removes an admin.
	if grouppolicy.CanRemoveMember(modA, g, members, byUser(admin)) {
		t.Error("moderator removed an admin")
	}
}

func TestIsMember(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()
	g := group(owner, models.PostOwner, models.EditOwner)
	members := []models.GroupMembership{membership(g, member, models.RoleMember)}

	// Read access is broader than post access: a plain member in an
	// owner-only-post group still reads.
	if !grouppolicy.IsMember(member, g, members) {
		t.Error("member not recognized")
	}
	if !grouppolicy.IsMember(owner, g, members) {
		t.Error("owner not recognized as member-equivalent")
	}
	if grouppolicy.IsMember(primitive.NewObjectID(), g, members) {
		t.Error("stranger recognized as member")
	}
}
