package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an active password-auth test user.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		EmailCI:    text.Fold(email),
		Username:   username,
		AuthMethod: models.AuthPassword,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateGroup creates a test group owned by ownerID. The zero values of
// the policy arguments fall back to the most permissive configuration so
// tests only spell out what they exercise.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID, joinType, postPerm, editPerm string) models.Group {
	f.t.Helper()

	if joinType == "" {
		joinType = models.JoinOpen
	}
	if postPerm == "" {
		postPerm = models.PostMembers
	}
	if editPerm == "" {
		editPerm = models.EditModerators
	}

	now := time.Now().UTC()
	group := models.Group{
		ID:              primitive.NewObjectID(),
		OwnerID:         ownerID,
		Name:            name,
		NameCI:          text.Fold(name),
		Description:     "Test group description",
		JoinType:        joinType,
		PostPermission:  postPerm,
		EditPermissions: editPerm,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateMembership creates a membership record linking a user to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()

	membership := models.GroupMembership{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("group_memberships").InsertOne(ctx, membership)
	if err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}

	return membership
}

// CreateJoinRequest creates a pending join request.
func (f *Fixtures) CreateJoinRequest(ctx context.Context, groupID, userID primitive.ObjectID) models.JoinRequest {
	f.t.Helper()

	req := models.JoinRequest{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("join_requests").InsertOne(ctx, req)
	if err != nil {
		f.t.Fatalf("failed to create test join request: %v", err)
	}

	return req
}

// CreateCourse creates a test course in the given group.
func (f *Fixtures) CreateCourse(ctx context.Context, groupID primitive.ObjectID, name string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("courses").InsertOne(ctx, course)
	if err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}

	return course
}

// CreateURLMaterial creates a URL-type material in the given course.
func (f *Fixtures) CreateURLMaterial(ctx context.Context, courseID, ownerID primitive.ObjectID, title, url string) models.Material {
	f.t.Helper()

	material := models.Material{
		ID:        primitive.NewObjectID(),
		CourseID:  courseID,
		OwnerID:   ownerID,
		Title:     title,
		TitleCI:   text.Fold(title),
		Type:      models.MaterialURL,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("materials").InsertOne(ctx, material)
	if err != nil {
		f.t.Fatalf("failed to create test material: %v", err)
	}

	return material
}

// CreateLabel creates a test label in the given group.
func (f *Fixtures) CreateLabel(ctx context.Context, groupID primitive.ObjectID, name string, minValue, maxValue int) models.Label {
	f.t.Helper()

	label := models.Label{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Name:      name,
		NameCI:    text.Fold(name),
		MinValue:  minValue,
		MaxValue:  maxValue,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("labels").InsertOne(ctx, label)
	if err != nil {
		f.t.Fatalf("failed to create test label: %v", err)
	}

	return label
}

// CreateComment creates a comment on the given material.
func (f *Fixtures) CreateComment(ctx context.Context, materialID, userID primitive.ObjectID, content string) models.MaterialComment {
	f.t.Helper()

	comment := models.MaterialComment{
		ID:         primitive.NewObjectID(),
		MaterialID: materialID,
		UserID:     userID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := f.db.Collection("material_comments").InsertOne(ctx, comment)
	if err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}

	return comment
}
