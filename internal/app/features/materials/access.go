// internal/app/features/materials/access.go
package materials

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadMaterialAccess resolves a materialID up its chain: material, course,
// group snapshot. A false return means a response has been written.
func (h *Handler) loadMaterialAccess(ctx context.Context, w http.ResponseWriter, r *http.Request, materialID, userID primitive.ObjectID) (ma materialWithAccess, ok bool) {
	m, err := materialstore.New(h.DB).GetByID(ctx, materialID)
	if err == materialstore.ErrNotFound {
		apierrors.RenderNotFound(w, "material not found")
		return ma, false
	}
	if err != nil {
		h.ErrLog.LogError(r, "load material failed", err)
		apierrors.RenderInternal(w)
		return ma, false
	}
	c, err := coursestore.New(h.DB).GetByID(ctx, m.CourseID)
	if err == coursestore.ErrNotFound {
		apierrors.RenderNotFound(w, "material not found")
		return ma, false
	}
	if err != nil {
		h.ErrLog.LogError(r, "load course failed", err)
		apierrors.RenderInternal(w)
		return ma, false
	}
	access, err := groupaccess.Load(ctx, h.DB, c.GroupID, userID)
	if err == groupaccess.ErrGroupNotFound {
		apierrors.RenderNotFound(w, "material not found")
		return ma, false
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return ma, false
	}
	return materialWithAccess{Material: m, Course: c, Access: access}, true
}
