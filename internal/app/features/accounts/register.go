// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleRegister creates a password account and signs the new user in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := inputval.ValidateEmail(req.Email); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateUsername(req.Username); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidatePassword(req.Password); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogError(r, "bcrypt hash failed", err)
		apierrors.RenderInternal(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Email:        req.Email,
		Username:     req.Username,
		AuthMethod:   models.AuthPassword,
		PasswordHash: hash,
	})
	if err == userstore.ErrDuplicateUser {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "create user failed", err)
		apierrors.RenderInternal(w)
		return
	}

	su := &auth.SessionUser{ID: user.ID.Hex(), Username: user.Username, Email: user.Email}
	if err := h.Sessions.SignIn(w, r, su); err != nil {
		h.ErrLog.LogError(r, "session sign-in failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, userResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
	})
}
