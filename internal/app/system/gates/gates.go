// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and parse path identifiers, rendering the
// appropriate JSON error when checks fail.
//
// Route-level middleware (auth.RequireSignedIn) guarantees a session is
// present; gates recover the typed user context from it. Resource-level
// authorization lives in internal/app/policy and is evaluated by handlers
// against a membership snapshot.
package gates

import (
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	UserID   primitive.ObjectID
	Username string
	OK       bool
}

// RequireAuth ensures a user is authenticated. If not, it renders a 401
// and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	uid, username, ok := authz.UserCtx(r)
	if !ok {
		apierrors.RenderUnauthorized(w)
		return Result{OK: false}
	}
	return Result{UserID: uid, Username: username, OK: true}
}

// PathID parses the named chi URL parameter as an ObjectID. A malformed
// identifier renders a 404 and returns ok=false: the resource it names
// cannot exist.
func PathID(w http.ResponseWriter, r *http.Request, name, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		apierrors.RenderNotFound(w, what+" not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
