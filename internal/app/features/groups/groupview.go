// internal/app/features/groups/groupview.go
package groups

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
)

// ServeGroupView handles GET /groups/{groupID}. Only the owner and members
// may read the detail; everyone else gets a 403 even for listed groups.
func (h *Handler) ServeGroupView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	access, err := groupaccess.Load(ctx, h.DB, groupID, res.UserID)
	if err == groupaccess.ErrGroupNotFound {
		apierrors.RenderNotFound(w, "group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if !access.IsMemberOrOwner() {
		apierrors.RenderForbidden(w, "you are not a member of this group")
		return
	}

	role := ""
	if access.IsOwner() {
		role = "owner"
	} else if m, ok := access.MembershipOf(res.UserID); ok {
		role = m.Role
	}

	httpjson.Write(w, http.StatusOK, groupDetail{
		Group:       access.Group,
		Role:        role,
		MemberCount: len(access.Members),
	})
}
