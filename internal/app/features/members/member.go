// internal/app/features/members/member.go
package members

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeMemberView handles GET /groups/{groupID}/members/{userID}. Edit
// authority required, same as the member list.
func (h *Handler) ServeMemberView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}
	userID, ok := gates.PathID(w, r, "userID", "member")
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
	if !access.CanEditMembers() {
		apierrors.RenderForbidden(w, "you cannot view this group's members")
		return
	}

	m, ok := access.MembershipOf(userID)
	if !ok {
		apierrors.RenderNotFound(w, "membership not found")
		return
	}
	entry := memberResponse{
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
	if u, err := userstore.New(h.DB).GetByID(ctx, m.UserID); err == nil {
		entry.Username = u.Username
	}
	httpjson.Write(w, http.StatusOK, entry)
}

// HandleRoleChange handles PUT /groups/{groupID}/members/{userID}. Only
// the owner reassigns roles: role grants are the levers of every other
// permission, so they do not delegate.
func (h *Handler) HandleRoleChange(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}
	userID, ok := gates.PathID(w, r, "userID", "member")
	if !ok {
		return
	}

	var req roleInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateRole(req.Role); err != nil {
		apierrors.RenderValidation(w, err.Error())
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
	if !access.IsOwner() {
		apierrors.RenderForbidden(w, "only the group owner can change member roles")
		return
	}

	err = membershipstore.New(h.DB).UpdateRole(ctx, groupID, userID, req.Role)
	if err == membershipstore.ErrNotFound {
		apierrors.RenderNotFound(w, "membership not found")
		return
	}
	if err == membershipstore.ErrBadRole {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "update role failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"role": req.Role})
}

// HandleRemoveMember handles DELETE /groups/{groupID}/members/{userID}.
// The owner removes anyone; otherwise the actor's role must strictly
// outrank the target's.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}
	userID, ok := gates.PathID(w, r, "userID", "member")
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

	target, ok := access.MembershipOf(userID)
	if !ok {
		apierrors.RenderNotFound(w, "membership not found")
		return
	}
	if !access.CanRemoveMember(target) {
		apierrors.RenderForbidden(w, "you cannot remove this member")
		return
	}

	err = membershipstore.New(h.DB).Remove(ctx, groupID, userID)
	if err == membershipstore.ErrNotFound {
		apierrors.RenderNotFound(w, "membership not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "remove member failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("member removed",
		zap.String("group_id", groupID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("removed_by", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "removed"})
}
