// internal/app/features/members/self.go
package members

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeSelf handles GET /groups/{groupID}/members/self: the caller's own
// standing in the group. The owner gets a virtual "owner" entry since they
// hold no membership row.
func (h *Handler) ServeSelf(w http.ResponseWriter, r *http.Request) {
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

	if access.IsOwner() {
		httpjson.Write(w, http.StatusOK, memberResponse{
			GroupID:  groupID,
			UserID:   res.UserID,
			Username: res.Username,
			Role:     "owner",
		})
		return
	}
	m, ok := access.MembershipOf(res.UserID)
	if !ok {
		apierrors.RenderNotFound(w, "you are not a member of this group")
		return
	}
	httpjson.Write(w, http.StatusOK, memberResponse{
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Username:  res.Username,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	})
}

// HandleLeave handles DELETE /groups/{groupID}/members/self. Any member
// may leave at any time; the owner has no membership to leave and must
// delete the group instead.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
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
	if access.IsOwner() {
		apierrors.RenderValidation(w, "the owner cannot leave their own group")
		return
	}

	err = membershipstore.New(h.DB).Remove(ctx, groupID, res.UserID)
	if err == membershipstore.ErrNotFound {
		apierrors.RenderNotFound(w, "you are not a member of this group")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "leave group failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("member left group",
		zap.String("group_id", groupID.Hex()),
		zap.String("user_id", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "left"})
}
