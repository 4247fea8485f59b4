package membershipstore_test

import (
	"testing"

	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/grouphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdd_DuplicateMapsToTypedError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := membershipstore.New(db)
	groupID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	if _, err := store.Add(ctx, groupID, userID, models.RoleMember); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// The unique (group_id, user_id) index is the only duplicate guard;
	// the raw driver error must come back as the typed one.
	if _, err := store.Add(ctx, groupID, userID, models.RoleModerator); err != membershipstore.ErrDuplicateMembership {
		t.Errorf("second add: got %v, want ErrDuplicateMembership", err)
	}
	// Same user in a different group is fine.
	if _, err := store.Add(ctx, primitive.NewObjectID(), userID, models.RoleMember); err != nil {
		t.Errorf("other group add: %v", err)
	}
}

func TestAdd_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := membershipstore.New(db)
	if _, err := store.Add(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "owner"); err != membershipstore.ErrBadRole {
		t.Errorf("got %v, want ErrBadRole", err)
	}
}

func TestUpdateRole_MissingMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := membershipstore.New(db)
	err := store.UpdateRole(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.RoleAdmin)
	if err != membershipstore.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
