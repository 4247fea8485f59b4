package accounts_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/grouphub/internal/app/features/accounts"
	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"github.com/dalemusser/grouphub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSessionKey = "dGVzdC1zZXNzaW9uLWtleS0zMi1ieXRlcy1sb25nISE="

func newTestHandler(t *testing.T) (*accounts.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(testSessionKey, "grouphub-session", "", false, logger)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	handler := accounts.NewHandler(db, sm, apierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

// insertPasswordUser writes a user row with a real bcrypt hash so login
// can be exercised without going through register.
func insertPasswordUser(t *testing.T, f *testutil.Fixtures, username, email, password, status string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      text.Fold(email),
		Username:     username,
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.DB().Collection("users").InsertOne(ctx, u); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return u
}

func TestHandleRegister_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/register", map[string]any{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "correct horse battery",
	})

	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Email != "alice@example.com" || resp.Username != "alice" {
		t.Errorf("response: got %+v", resp)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on register")
	}

	var u models.User
	if err := fixtures.DB().Collection("users").FindOne(ctx,
		bson.M{"email_ci": text.Fold("alice@example.com")}).Decode(&u); err != nil {
		t.Fatalf("user row not found: %v", err)
	}
	if u.Status != "active" {
		t.Errorf("Status: got %q, want %q", u.Status, "active")
	}
	if u.AuthMethod != models.AuthPassword {
		t.Errorf("AuthMethod: got %q, want %q", u.AuthMethod, models.AuthPassword)
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("correct horse battery")) != nil {
		t.Error("stored hash does not match the registered password")
	}
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/register", map[string]any{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "short",
	})

	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", "alice@example.com")

	// Same address, different case. The case-folded unique index catches it.
	req := testutil.NewJSONRequest(t, "POST", "/register", map[string]any{
		"email":    "Alice@Example.com",
		"username": "alice2",
		"password": "correct horse battery",
	})

	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d (%s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestHandleLogin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)

	u := insertPasswordUser(t, fixtures, "alice", "alice@example.com", "correct horse battery", "active")

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.ID != u.ID.Hex() {
		t.Errorf("ID: got %q, want %q", resp.ID, u.ID.Hex())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on login")
	}
}

// Every credential failure gets the same generic 400 so the endpoint does
// not leak which accounts exist.
func TestHandleLogin_Failures(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	insertPasswordUser(t, fixtures, "alice", "alice@example.com", "correct horse battery", "active")
	insertPasswordUser(t, fixtures, "dave", "dave@example.com", "correct horse battery", "disabled")
	now := time.Now().UTC()
	if _, err := fixtures.DB().Collection("users").InsertOne(ctx, models.User{
		ID:         primitive.NewObjectID(),
		Email:      "goog@example.com",
		EmailCI:    text.Fold("goog@example.com"),
		Username:   "goog",
		AuthMethod: models.AuthGoogle,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("insert google user: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "not the password"},
		{"unknown email", "nobody@example.com", "correct horse battery"},
		{"google account", "goog@example.com", "correct horse battery"},
		{"disabled account", "dave@example.com", "correct horse battery"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
				"email":    tc.email,
				"password": tc.password,
			})
			rec := httptest.NewRecorder()
			handler.HandleLogin(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var resp struct {
				Error string `json:"error"`
			}
			testutil.DecodeJSON(t, rec, &resp)
			if resp.Error != "invalid email or password" {
				t.Errorf("error: got %q, want %q", resp.Error, "invalid email or password")
			}
		})
	}
}

func TestHandleLogout_WithoutSession(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/logout", nil)
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d (%s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}
