// internal/app/features/materials/labels.go
package materials

import (
	"context"
	"fmt"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	labelstore "github.com/dalemusser/grouphub/internal/app/store/labels"
	materiallabelstore "github.com/dalemusser/grouphub/internal/app/store/materiallabels"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeMaterialLabels handles GET /materials/{materialID}/labels.
func (h *Handler) ServeMaterialLabels(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	materialID, ok := gates.PathID(w, r, "materialID", "material")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ma, ok := h.loadMaterialAccess(ctx, w, r, materialID, res.UserID)
	if !ok {
		return
	}
	if !ma.Access.IsMemberOrOwner() {
		apierrors.RenderForbidden(w, "you are not a member of this group")
		return
	}

	rows, err := materiallabelstore.New(h.DB).ListByMaterial(ctx, materialID)
	if err != nil {
		h.ErrLog.LogError(r, "list material labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if rows == nil {
		rows = []models.MaterialLabel{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// HandleSetMaterialLabels handles PUT /materials/{materialID}/labels,
// replacing the material's whole label set. Creator only. Every label must
// belong to the material's group, appear at most once, and carry a number
// inside the label's range.
func (h *Handler) HandleSetMaterialLabels(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	materialID, ok := gates.PathID(w, r, "materialID", "material")
	if !ok {
		return
	}

	var req labelsInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ma, ok := h.loadMaterialAccess(ctx, w, r, materialID, res.UserID)
	if !ok {
		return
	}
	if ma.Material.OwnerID != res.UserID {
		apierrors.RenderForbidden(w, "only the creator can label a material")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.Labels))
	seen := map[string]bool{}
	for _, a := range req.Labels {
		id, err := primitive.ObjectIDFromHex(a.LabelID)
		if err != nil {
			apierrors.RenderValidation(w, "label_id is not a valid id")
			return
		}
		if seen[a.LabelID] {
			apierrors.RenderValidation(w, "a label may appear at most once")
			return
		}
		seen[a.LabelID] = true
		ids = append(ids, id)
	}

	labels, err := labelstore.New(h.DB).ListByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.LogError(r, "load labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	byID := make(map[primitive.ObjectID]models.Label, len(labels))
	for _, l := range labels {
		byID[l.ID] = l
	}

	assignments := make([]materiallabelstore.Assignment, 0, len(req.Labels))
	for i, a := range req.Labels {
		l, found := byID[ids[i]]
		if !found || l.GroupID != ma.Course.GroupID {
			apierrors.RenderValidation(w, "label does not belong to this group")
			return
		}
		if a.Number < l.MinValue || a.Number > l.MaxValue {
			apierrors.RenderValidation(w, fmt.Sprintf(
				"number for label %q must be between %d and %d", l.Name, l.MinValue, l.MaxValue))
			return
		}
		assignments = append(assignments, materiallabelstore.Assignment{LabelID: l.ID, Number: a.Number})
	}

	if err := materiallabelstore.New(h.DB).Replace(ctx, materialID, assignments); err != nil {
		h.ErrLog.LogError(r, "replace material labels failed", err)
		apierrors.RenderInternal(w)
		return
	}

	rows, err := materiallabelstore.New(h.DB).ListByMaterial(ctx, materialID)
	if err != nil {
		h.ErrLog.LogError(r, "list material labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if rows == nil {
		rows = []models.MaterialLabel{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}
