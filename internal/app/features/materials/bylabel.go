// internal/app/features/materials/bylabel.go
package materials

import (
	"context"
	"net/http"
	"sort"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	labelstore "github.com/dalemusser/grouphub/internal/app/store/labels"
	materiallabelstore "github.com/dalemusser/grouphub/internal/app/store/materiallabels"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// ServeMaterialsByLabel handles
// GET /courses/{courseID}/materials/labels/{labelID}: the course's
// materials carrying the label, grouped by label number ascending.
func (h *Handler) ServeMaterialsByLabel(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	courseID, ok := gates.PathID(w, r, "courseID", "course")
	if !ok {
		return
	}
	labelID, ok := gates.PathID(w, r, "labelID", "label")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	course, err := coursestore.New(h.DB).GetByID(ctx, courseID)
	if err == coursestore.ErrNotFound {
		apierrors.RenderNotFound(w, "course not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load course failed", err)
		apierrors.RenderInternal(w)
		return
	}
	access, err := groupaccess.Load(ctx, h.DB, course.GroupID, res.UserID)
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if !access.IsMemberOrOwner() {
		apierrors.RenderForbidden(w, "you are not a member of this group")
		return
	}

	label, err := labelstore.New(h.DB).GetByID(ctx, labelID)
	if err == labelstore.ErrNotFound || (err == nil && label.GroupID != course.GroupID) {
		apierrors.RenderNotFound(w, "label not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load label failed", err)
		apierrors.RenderInternal(w)
		return
	}

	rows, err := materiallabelstore.New(h.DB).ListByLabel(ctx, labelID)
	if err != nil {
		h.ErrLog.LogError(r, "list label rows failed", err)
		apierrors.RenderInternal(w)
		return
	}

	// The label spans the group; keep only this course's materials.
	mStore := materialstore.New(h.DB)
	byNumber := map[int][]models.Material{}
	for _, row := range rows {
		m, err := mStore.GetByID(ctx, row.MaterialID)
		if err == materialstore.ErrNotFound {
			continue
		}
		if err != nil {
			h.ErrLog.LogError(r, "load labeled material failed", err)
			apierrors.RenderInternal(w)
			return
		}
		if m.CourseID != courseID {
			continue
		}
		byNumber[row.Number] = append(byNumber[row.Number], m)
	}

	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]labeledMaterials, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, labeledMaterials{Number: n, Materials: byNumber[n]})
	}
	httpjson.Write(w, http.StatusOK, out)
}
