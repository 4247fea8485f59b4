// internal/app/features/joinrequests/respond.go
package joinrequests

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
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRespond handles POST /join-requests/{requestID} with an accept or
// decline action. Edit authority on the request's group is required.
//
// Accept is idempotent against racing approvers: if the membership insert
// hits the unique index, someone else already let the user in, and the
// request is still deleted and the response still succeeds. A request
// that has already been resolved is a plain 404.
func (h *Handler) HandleRespond(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	requestID, ok := gates.PathID(w, r, "requestID", "join request")
	if !ok {
		return
	}

	var req respondInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if !joinpolicy.ValidAction(req.Action) {
		apierrors.RenderValidation(w, `action must be "accept" or "decline"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	jrStore := joinrequeststore.New(h.DB)
	jr, err := jrStore.GetByID(ctx, requestID)
	if err == joinrequeststore.ErrNotFound {
		apierrors.RenderNotFound(w, "join request not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load join request failed", err)
		apierrors.RenderInternal(w)
		return
	}

	access, err := groupaccess.Load(ctx, h.DB, jr.GroupID, res.UserID)
	if err == groupaccess.ErrGroupNotFound {
		// The group went away under the request; treat the request as gone.
		_ = jrStore.Delete(ctx, requestID)
		apierrors.RenderNotFound(w, "join request not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if !access.CanEditMembers() {
		apierrors.RenderForbidden(w, "you cannot manage this group's join requests")
		return
	}

	if req.Action == joinpolicy.ActionAccept {
		_, err := membershipstore.New(h.DB).Add(ctx, jr.GroupID, jr.UserID, models.RoleMember)
		if err != nil && err != membershipstore.ErrDuplicateMembership {
			h.ErrLog.LogError(r, "accept join request failed", err)
			apierrors.RenderInternal(w)
			return
		}
	}

	if err := jrStore.Delete(ctx, requestID); err != nil {
		h.ErrLog.LogError(r, "delete join request failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("join request resolved",
		zap.String("request_id", requestID.Hex()),
		zap.String("group_id", jr.GroupID.Hex()),
		zap.String("action", req.Action),
		zap.String("resolved_by", res.UserID.Hex()))

	status := "declined"
	if req.Action == joinpolicy.ActionAccept {
		status = "accepted"
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": status})
}
