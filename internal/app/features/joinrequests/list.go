// internal/app/features/joinrequests/list.go
package joinrequests

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	joinrequeststore "github.com/dalemusser/grouphub/internal/app/store/joinrequests"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
)

// ServeList handles GET /groups/{groupID}/join-requests: the pending
// queue, visible to edit-authorized members only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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
		apierrors.RenderForbidden(w, "you cannot view this group's join requests")
		return
	}

	requests, err := joinrequeststore.New(h.DB).ListByGroup(ctx, groupID)
	if err != nil {
		h.ErrLog.LogError(r, "list join requests failed", err)
		apierrors.RenderInternal(w)
		return
	}

	usrStore := userstore.New(h.DB)
	out := make([]requestResponse, 0, len(requests))
	for _, jr := range requests {
		entry := requestResponse{
			ID:        jr.ID,
			GroupID:   jr.GroupID,
			UserID:    jr.UserID,
			CreatedAt: jr.CreatedAt,
		}
		if u, err := usrStore.GetByID(ctx, jr.UserID); err == nil {
			entry.Username = u.Username
		}
		out = append(out, entry)
	}

	httpjson.Write(w, http.StatusOK, out)
}
