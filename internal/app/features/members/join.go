// internal/app/features/members/join.go
package members

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/policy/joinpolicy"
	joinrequeststore "github.com/dalemusser/grouphub/internal/app/store/joinrequests"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleJoin handles POST /groups/{groupID}/members.
//
// With no user_id the caller is joining themselves and the group's
// join_type decides: open creates the membership, request queues a join
// request, invite is denied. With a user_id the caller is adding someone
// directly, which requires edit authority and bypasses the join flow.
// The owner can never be added: owner standing is not a membership.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	var req joinInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		// An empty body is a plain self-join.
		req = joinInput{}
	}

	target := res.UserID
	if req.UserID != "" {
		tid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			apierrors.RenderValidation(w, "user_id is not a valid id")
			return
		}
		target = tid
	}

	role := models.RoleMember
	if req.Role != "" {
		if err := inputval.ValidateRole(req.Role); err != nil {
			apierrors.RenderValidation(w, err.Error())
			return
		}
		role = req.Role
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

	if target == access.Group.OwnerID {
		apierrors.RenderValidation(w, "the group owner cannot hold a membership")
		return
	}

	canEdit := access.CanEditMembers()
	if target != res.UserID && !canEdit {
		apierrors.RenderForbidden(w, "you cannot add members to this group")
		return
	}
	if role != models.RoleMember && !canEdit {
		apierrors.RenderValidation(w, "you cannot choose a role when joining")
		return
	}

	switch joinpolicy.DecideJoin(access.Group, canEdit) {
	case joinpolicy.CreateMembership:
		m, err := membershipstore.New(h.DB).Add(ctx, groupID, target, role)
		if err == membershipstore.ErrDuplicateMembership {
			apierrors.RenderValidation(w, err.Error())
			return
		}
		if err != nil {
			h.ErrLog.LogError(r, "add membership failed", err)
			apierrors.RenderInternal(w)
			return
		}
		httpjson.Write(w, http.StatusCreated, memberResponse{
			GroupID:   m.GroupID,
			UserID:    m.UserID,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		})

	case joinpolicy.CreatePending:
		jr, err := joinrequeststore.New(h.DB).Create(ctx, groupID, target)
		if err == joinrequeststore.ErrDuplicateRequest {
			apierrors.RenderValidation(w, err.Error())
			return
		}
		if err != nil {
			h.ErrLog.LogError(r, "create join request failed", err)
			apierrors.RenderInternal(w)
			return
		}
		httpjson.Write(w, http.StatusCreated, pendingResponse{Status: "pending", RequestID: jr.ID})

	case joinpolicy.Deny:
		apierrors.RenderForbidden(w, "this group is invite only")

	default:
		apierrors.RenderValidation(w, "this group cannot be joined")
	}
}
