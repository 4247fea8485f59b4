// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin verifies credentials and starts a session. Wrong email and
// wrong password get the same answer.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		apierrors.RenderValidation(w, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err == userstore.ErrNotFound {
		apierrors.RenderValidation(w, "invalid email or password")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "login lookup failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if user.AuthMethod != models.AuthPassword || user.Status != "active" {
		apierrors.RenderValidation(w, "invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		apierrors.RenderValidation(w, "invalid email or password")
		return
	}

	su := &auth.SessionUser{ID: user.ID.Hex(), Username: user.Username, Email: user.Email}
	if err := h.Sessions.SignIn(w, r, su); err != nil {
		h.ErrLog.LogError(r, "session sign-in failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, userResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
	})
}

// HandleLogout ends the session. Logging out without a session is fine.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.ErrLog.LogError(r, "session sign-out failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed out"})
}
