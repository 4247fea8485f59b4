package labels_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/features/labels"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/grouphub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*labels.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := labels.NewHandler(db, apierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleCreateLabel_AdminOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	moderator := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	admin := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	group := fixtures.CreateGroup(ctx, "Label Group", owner.ID, "", "", "")
	fixtures.CreateMembership(ctx, group.ID, moderator.ID, models.RoleModerator)
	fixtures.CreateMembership(ctx, group.ID, admin.ID, models.RoleAdmin)

	post := func(u models.User, name string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/labels",
			map[string]any{"name": name, "min_value": 1, "max_value": 10})
		req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
		req = testutil.WithUser(req, u)
		rec := httptest.NewRecorder()
		handler.HandleCreateLabel(rec, req)
		return rec
	}

	if rec := post(moderator, "week"); rec.Code != http.StatusForbidden {
		t.Errorf("moderator: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := post(admin, "week"); rec.Code != http.StatusCreated {
		t.Errorf("admin: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if rec := post(owner, "chapter"); rec.Code != http.StatusCreated {
		t.Errorf("owner: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestHandleCreateLabel_BadRange(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	group := fixtures.CreateGroup(ctx, "Label Group", owner.ID, "", "", "")

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/labels",
		map[string]any{"name": "bad", "min_value": 10, "max_value": 1})
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateLabel(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateLabel_DuplicateNameInGroup(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	group := fixtures.CreateGroup(ctx, "Label Group", owner.ID, "", "", "")
	fixtures.CreateLabel(ctx, group.ID, "week", 1, 10)

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/labels",
		map[string]any{"name": "Week", "min_value": 1, "max_value": 5})
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateLabel(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestServeLabelsList_MemberVisible(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	member := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	outsider := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	group := fixtures.CreateGroup(ctx, "Label Group", owner.ID, "", "", "")
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)
	fixtures.CreateLabel(ctx, group.ID, "week", 1, 10)

	get := func(u models.User) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "GET", "/groups/"+group.ID.Hex()+"/labels", nil)
		req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
		req = testutil.WithUser(req, u)
		rec := httptest.NewRecorder()
		handler.ServeLabelsList(rec, req)
		return rec
	}

	if rec := get(outsider); rec.Code != http.StatusForbidden {
		t.Errorf("outsider: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	rec := get(member)
	if rec.Code != http.StatusOK {
		t.Fatalf("member: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var list []models.Label
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("expected 1 label, got %d", len(list))
	}
}
