package courses_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/grouphub/internal/app/features/courses"
	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/grouphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*courses.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := courses.NewHandler(db, apierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestHandleCreateCourse_GroupAdmin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	admin := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	fixtures.CreateMembership(ctx, group.ID, admin.ID, models.RoleAdmin)

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/courses",
		map[string]any{"name": "Intro to Go", "description": "Basics"})
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, admin)

	rec := httptest.NewRecorder()
	handler.HandleCreateCourse(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created models.Course
	testutil.DecodeJSON(t, rec, &created)
	if created.GroupID != group.ID {
		t.Errorf("GroupID: got %v, want %v", created.GroupID, group.ID)
	}
	if created.Name != "Intro to Go" {
		t.Errorf("Name: got %q, want %q", created.Name, "Intro to Go")
	}
}

func TestHandleCreateCourse_Moderator_Forbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	moderator := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	fixtures.CreateMembership(ctx, group.ID, moderator.ID, models.RoleModerator)

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/courses",
		map[string]any{"name": "Nope"})
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, moderator)

	rec := httptest.NewRecorder()
	handler.HandleCreateCourse(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleCreateCourse_DuplicateNameInGroup(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	fixtures.CreateCourse(ctx, group.ID, "Taken Course")

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group.ID.Hex()+"/courses",
		map[string]any{"name": "taken course"})
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateCourse(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleCreateCourse_SameNameDifferentGroup(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	group1 := fixtures.CreateGroup(ctx, "Group One", owner.ID, "", "", "")
	group2 := fixtures.CreateGroup(ctx, "Group Two", owner.ID, "", "", "")
	fixtures.CreateCourse(ctx, group1.ID, "Shared Name")

	req := testutil.NewJSONRequest(t, "POST", "/groups/"+group2.ID.Hex()+"/courses",
		map[string]any{"name": "Shared Name"})
	req = testutil.WithChiURLParam(req, "groupID", group2.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateCourse(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestServeCoursesList_NonMember_Forbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	outsider := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	fixtures.CreateCourse(ctx, group.ID, "Hidden Course")

	req := testutil.NewJSONRequest(t, "GET", "/groups/"+group.ID.Hex()+"/courses", nil)
	req = testutil.WithChiURLParam(req, "groupID", group.ID.Hex())
	req = testutil.WithUser(req, outsider)

	rec := httptest.NewRecorder()
	handler.ServeCoursesList(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleEditCourse_OwnerOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	admin := fixtures.CreateUser(ctx, "bob", "bob@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	fixtures.CreateMembership(ctx, group.ID, admin.ID, models.RoleAdmin)
	course := fixtures.CreateCourse(ctx, group.ID, "Original Course")

	req := testutil.NewJSONRequest(t, "PUT", "/courses/"+course.ID.Hex(),
		map[string]any{"name": "Renamed Course"})
	req = testutil.WithChiURLParam(req, "courseID", course.ID.Hex())
	req = testutil.WithUser(req, admin)

	rec := httptest.NewRecorder()
	handler.HandleEditCourse(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin edit: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = testutil.NewJSONRequest(t, "PUT", "/courses/"+course.ID.Hex(),
		map[string]any{"name": "Renamed Course"})
	req = testutil.WithChiURLParam(req, "courseID", course.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec = httptest.NewRecorder()
	handler.HandleEditCourse(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner edit: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var updated models.Course
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Name != "Renamed Course" {
		t.Errorf("Name: got %q, want %q", updated.Name, "Renamed Course")
	}
}

func TestHandleDeleteCourse_CascadesMaterials(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	db := fixtures.DB()
	owner := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	group := fixtures.CreateGroup(ctx, "Course Group", owner.ID, "", "", "")
	course := fixtures.CreateCourse(ctx, group.ID, "Doomed Course")
	material := fixtures.CreateURLMaterial(ctx, course.ID, owner.ID, "Doomed Material", "https://example.com")
	label := fixtures.CreateLabel(ctx, group.ID, "week", 1, 10)
	fixtures.CreateComment(ctx, material.ID, owner.ID, "bye")
	if _, err := db.Collection("material_labels").InsertOne(ctx, models.MaterialLabel{
		MaterialID: material.ID,
		LabelID:    label.ID,
		Number:     1,
	}); err != nil {
		t.Fatalf("failed to insert material label: %v", err)
	}

	req := testutil.NewJSONRequest(t, "DELETE", "/courses/"+course.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "courseID", course.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleDeleteCourse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	for _, coll := range []string{"courses", "materials", "material_labels", "material_comments"} {
		count, _ := db.Collection(coll).CountDocuments(ctx, bson.M{})
		if count != 0 {
			t.Errorf("%s: expected 0 documents after course delete, got %d", coll, count)
		}
	}
	// The group-level label survives; it belongs to the group, not the course.
	count, _ := db.Collection("labels").CountDocuments(ctx, bson.M{})
	if count != 1 {
		t.Errorf("labels: expected 1 document, got %d", count)
	}
}
