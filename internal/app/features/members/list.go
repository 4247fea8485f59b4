// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
)

// ServeMembersList handles GET /groups/{groupID}/members. Gated on edit
// authority: the member list is management surface, not public surface.
func (h *Handler) ServeMembersList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
	if !access.CanEditMembers() {
		apierrors.RenderForbidden(w, "you cannot view this group's members")
		return
	}

	usrStore := userstore.New(h.DB)
	out := make([]memberResponse, 0, len(access.Members))
	for _, m := range access.Members {
		entry := memberResponse{
			GroupID:   m.GroupID,
			UserID:    m.UserID,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		}
		if u, err := usrStore.GetByID(ctx, m.UserID); err == nil {
			entry.Username = u.Username
		}
		out = append(out, entry)
	}

	httpjson.Write(w, http.StatusOK, out)
}
