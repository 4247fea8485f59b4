// internal/app/features/groups/groupedit.go
package groups

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/grouphub/internal/app/store/groups"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// HandleEditGroup handles PUT /groups/{groupID}. Owner only: changing the
// group's policy knobs changes everyone's authority, so edit_permissions
// does not delegate this.
func (h *Handler) HandleEditGroup(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	var req groupInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name != "" {
		if err := inputval.ValidateName(req.Name); err != nil {
			apierrors.RenderValidation(w, err.Error())
			return
		}
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

	grpStore := groupstore.New(h.DB)
	group, err := grpStore.GetByID(ctx, groupID)
	if err == groupstore.ErrNotFound {
		apierrors.RenderNotFound(w, "group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if !grouppolicy.IsOwner(res.UserID, group) {
		apierrors.RenderForbidden(w, "only the group owner can edit the group")
		return
	}

	err = grpStore.UpdateInfo(ctx, groupID, models.Group{
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
	if err == groupstore.ErrNotFound {
		apierrors.RenderNotFound(w, "group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "update group failed", err)
		apierrors.RenderInternal(w)
		return
	}

	updated, err := grpStore.GetByID(ctx, groupID)
	if err != nil {
		h.ErrLog.LogError(r, "reload group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}
