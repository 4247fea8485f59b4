// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the authenticated user's Mongo ObjectID, username, and a
// found flag. If no user is present in context or the user ID is
// malformed, it returns NilObjectID, "", false — callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
//
// There is no global role here: all authority in GroupHub is derived per
// group by the policy packages from ownership and membership rows.
func UserCtx(r *http.Request) (userID primitive.ObjectID, username string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return primitive.NilObjectID, "", false
	}
	return userID, user.Username, true
}
