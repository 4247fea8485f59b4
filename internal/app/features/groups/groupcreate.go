// internal/app/features/groups/groupcreate.go
package groups

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	groupstore "github.com/dalemusser/grouphub/internal/app/store/groups"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// HandleCreateGroup handles POST /groups. The creator becomes the owner;
// owners hold no membership row in their own group.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req groupInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := inputval.ValidateName(req.Name); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateJoinType(req.JoinType); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidatePostPermission(req.PostPermission); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateEditPermissions(req.EditPermissions); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groupstore.New(h.DB).Create(ctx, models.Group{
		OwnerID:         res.UserID,
		Name:            req.Name,
		Description:     sanitize.Text(req.Description),
		JoinType:        req.JoinType,
		PostPermission:  req.PostPermission,
		EditPermissions: req.EditPermissions,
	})
	if err == groupstore.ErrDuplicateGroupName {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "create group failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, group)
}
