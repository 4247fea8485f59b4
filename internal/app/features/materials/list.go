// internal/app/features/materials/list.go
package materials

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// ServeMaterialsList handles GET /courses/{courseID}/materials. Members
// and the owner of the enclosing group may browse.
func (h *Handler) ServeMaterialsList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	courseID, ok := gates.PathID(w, r, "courseID", "course")
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

	materials, err := materialstore.New(h.DB).ListByCourse(ctx, courseID)
	if err != nil {
		h.ErrLog.LogError(r, "list materials failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if materials == nil {
		materials = []models.Material{}
	}
	httpjson.Write(w, http.StatusOK, materials)
}

// ServeMaterialView handles GET /materials/{materialID}.
func (h *Handler) ServeMaterialView(w http.ResponseWriter, r *http.Request) {
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
	httpjson.Write(w, http.StatusOK, ma.Material)
}

// ServeMaterialDownload handles GET /materials/{materialID}/download,
// streaming a document material's stored file.
func (h *Handler) ServeMaterialDownload(w http.ResponseWriter, r *http.Request) {
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
	if !ma.Material.HasFile() {
		apierrors.RenderNotFound(w, "this material has no file")
		return
	}

	f, err := h.Files.Open(ma.Material.FilePath)
	if err != nil {
		h.ErrLog.LogError(r, "open stored file failed", err)
		apierrors.RenderNotFound(w, "file not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+ma.Material.FileName+`"`)
	http.ServeContent(w, r, ma.Material.FileName, ma.Material.CreatedAt, f)
}
