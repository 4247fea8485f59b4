// internal/app/features/materials/edit.go
package materials

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	commentstore "github.com/dalemusser/grouphub/internal/app/store/comments"
	materiallabelstore "github.com/dalemusser/grouphub/internal/app/store/materiallabels"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleEditMaterial handles PUT /materials/{materialID}. Creator only.
// Metadata and the URL payload can change; a document material keeps its
// file and cannot be turned into a URL material.
func (h *Handler) HandleEditMaterial(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	materialID, ok := gates.PathID(w, r, "materialID", "material")
	if !ok {
		return
	}

	var req materialInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title != "" {
		if err := inputval.ValidateTitle(req.Title); err != nil {
			apierrors.RenderValidation(w, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ma, ok := h.loadMaterialAccess(ctx, w, r, materialID, res.UserID)
	if !ok {
		return
	}
	if ma.Material.OwnerID != res.UserID {
		apierrors.RenderForbidden(w, "only the creator can edit a material")
		return
	}

	updated := ma.Material
	updated.Title = req.Title
	updated.Description = sanitize.Text(req.Description)

	switch ma.Material.Type {
	case models.MaterialURL:
		if req.URL != "" {
			if err := inputval.ValidateMaterialURL(req.URL); err != nil {
				apierrors.RenderValidation(w, err.Error())
				return
			}
			updated.URL = req.URL
		}
	case models.MaterialDocument:
		if req.URL != "" {
			apierrors.RenderValidation(w, "a document material cannot take a url")
			return
		}
	}

	mStore := materialstore.New(h.DB)
	err := mStore.UpdateInfo(ctx, materialID, updated)
	if err == materialstore.ErrDuplicateTitle {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err == materialstore.ErrNotFound {
		apierrors.RenderNotFound(w, "material not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "update material failed", err)
		apierrors.RenderInternal(w)
		return
	}

	reloaded, err := mStore.GetByID(ctx, materialID)
	if err != nil {
		h.ErrLog.LogError(r, "reload material failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, reloaded)
}

// HandleDeleteMaterial handles DELETE /materials/{materialID}. The creator
// or an edit-authorized member may delete; label rows, comments, and the
// stored file go with it.
func (h *Handler) HandleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	materialID, ok := gates.PathID(w, r, "materialID", "material")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ma, ok := h.loadMaterialAccess(ctx, w, r, materialID, res.UserID)
	if !ok {
		return
	}
	if ma.Material.OwnerID != res.UserID && !ma.Access.CanEditMembers() {
		apierrors.RenderForbidden(w, "you cannot delete this material")
		return
	}

	if _, err := materiallabelstore.New(h.DB).DeleteByMaterial(ctx, materialID); err != nil {
		h.ErrLog.LogError(r, "delete material labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if _, err := commentstore.New(h.DB).DeleteByMaterial(ctx, materialID); err != nil {
		h.ErrLog.LogError(r, "delete comments failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if err := materialstore.New(h.DB).Delete(ctx, materialID); err != nil && err != materialstore.ErrNotFound {
		h.ErrLog.LogError(r, "delete material failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if ma.Material.HasFile() {
		if err := h.Files.Remove(ma.Material.FilePath); err != nil {
			h.Log.Warn("stored file removal failed",
				zap.String("path", ma.Material.FilePath), zap.Error(err))
		}
	}

	h.Log.Info("material deleted",
		zap.String("material_id", materialID.Hex()),
		zap.String("deleted_by", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
