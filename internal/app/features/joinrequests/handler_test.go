package joinrequests_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/features/joinrequests"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/grouphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*joinrequests.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := joinrequests.NewHandler(db, apierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleRespond_Accept(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	requester := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", "")
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
		map[string]any{"action": "accept"})
	req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleRespond(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Status != "accepted" {
		t.Errorf("Status: got %q, want %q", resp.Status, "accepted")
	}

	db := fixtures.DB()
	var m models.GroupMembership
	if err := db.Collection("group_memberships").FindOne(ctx,
		bson.M{"group_id": group.ID, "user_id": requester.ID}).Decode(&m); err != nil {
		t.Fatalf("membership not created: %v", err)
	}
	if m.Role != models.RoleMember {
		t.Errorf("Role: got %q, want %q", m.Role, models.RoleMember)
	}
	count, _ := db.Collection("join_requests").CountDocuments(ctx, bson.M{"_id": jr.ID})
	if count != 0 {
		t.Errorf("expected request deleted, got %d", count)
	}
}

func TestHandleRespond_Decline(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	requester := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", "")
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
		map[string]any{"action": "decline"})
	req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleRespond(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	db := fixtures.DB()
	mCount, _ := db.Collection("group_memberships").CountDocuments(ctx, bson.M{"group_id": group.ID})
	if mCount != 0 {
		t.Errorf("decline must not create a membership, got %d", mCount)
	}
	rCount, _ := db.Collection("join_requests").CountDocuments(ctx, bson.M{"_id": jr.ID})
	if rCount != 0 {
		t.Errorf("expected request deleted, got %d", rCount)
	}
}

func TestHandleRespond_ResolvedRequest_NotFound(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	requester := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", "")
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	respond := func(action string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
			map[string]any{"action": action})
		req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
		req = testutil.WithUser(req, owner)
		rec := httptest.NewRecorder()
		handler.HandleRespond(rec, req)
		return rec
	}

	if rec := respond("accept"); rec.Code != http.StatusOK {
		t.Fatalf("first respond: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	// The request is gone; responding again is a 404 either way.
	if rec := respond("accept"); rec.Code != http.StatusNotFound {
		t.Errorf("second accept: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := respond("decline"); rec.Code != http.StatusNotFound {
		t.Errorf("decline after accept: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleRespond_AcceptWithExistingMembership_Idempotent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	requester := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", "")
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)
	// Another path already let the user in.
	fixtures.CreateMembership(ctx, group.ID, requester.ID, models.RoleMember)

	req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
		map[string]any{"action": "accept"})
	req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleRespond(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	count, _ := fixtures.DB().Collection("join_requests").CountDocuments(ctx, bson.M{"_id": jr.ID})
	if count != 0 {
		t.Errorf("expected request deleted, got %d", count)
	}
}

func TestHandleRespond_PlainMember_Forbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	member := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	requester := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", models.EditModerators)
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
		map[string]any{"action": "accept"})
	req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
	req = testutil.WithUser(req, member)

	rec := httptest.NewRecorder()
	handler.HandleRespond(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	count, _ := fixtures.DB().Collection("join_requests").CountDocuments(ctx, bson.M{"_id": jr.ID})
	if count != 1 {
		t.Errorf("expected request untouched, got %d", count)
	}
}

func TestHandleRespond_BadAction(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	requester := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", "")
	jr := fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	req := testutil.NewJSONRequest(t, "POST", "/join-requests/"+jr.ID.Hex(),
		map[string]any{"action": "maybe"})
	req = testutil.WithChiURLParam(req, "requestID", jr.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleRespond(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeList_EditAuthorityOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	member := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	requester := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	group := fixtures.CreateGroup(ctx, "Request Group", owner.ID, models.JoinTypeRequest, "", models.EditModerators)
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)
	fixtures.CreateJoinRequest(ctx, group.ID, requester.ID)

	req := testutil.NewJSONRequest(t, "GET", "/groups/"+group.ID.Hex()+"/join-requests", nil)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, member)

	rec := httptest.NewRecorder()
	handler.ServeList(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("plain member: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewJSONRequest(t, "GET", "/groups/"+group.ID.Hex()+"/join-requests", nil)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec = httptest.NewRecorder()
	handler.ServeList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var list []struct {
		Username string `json:"username"`
	}
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 request, got %d", len(list))
	}
	if list[0].Username != "carol" {
		t.Errorf("Username: got %q, want %q", list[0].Username, "carol")
	}
}
