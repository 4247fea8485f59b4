// internal/app/features/labels/labels.go
package labels

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	labelstore "github.com/dalemusser/grouphub/internal/app/store/labels"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// labelInput is the POST /groups/{groupID}/labels payload.
type labelInput struct {
	Name     string `json:"name"`
	MinValue int    `json:"min_value"`
	MaxValue int    `json:"max_value"`
}

// ServeLabelsList handles GET /groups/{groupID}/labels. Members and the
// owner may browse.
func (h *Handler) ServeLabelsList(w http.ResponseWriter, r *http.Request) {
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

	labels, err := labelstore.New(h.DB).ListByGroup(ctx, groupID)
	if err != nil {
		h.ErrLog.LogError(r, "list labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if labels == nil {
		labels = []models.Label{}
	}
	httpjson.Write(w, http.StatusOK, labels)
}

// HandleCreateLabel handles POST /groups/{groupID}/labels. Restricted to
// the owner and group admins.
func (h *Handler) HandleCreateLabel(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	var req labelInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := inputval.ValidateLabelName(req.Name); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateLabelRange(req.MinValue, req.MaxValue); err != nil {
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
	if !access.IsGroupAdmin() {
		apierrors.RenderForbidden(w, "only the owner or a group admin can create labels")
		return
	}

	label, err := labelstore.New(h.DB).Create(ctx, models.Label{
		GroupID:  groupID,
		Name:     req.Name,
		MinValue: req.MinValue,
		MaxValue: req.MaxValue,
	})
	if err == labelstore.ErrDuplicateLabelName {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "create label failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, label)
}
