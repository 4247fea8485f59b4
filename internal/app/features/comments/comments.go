// internal/app/features/comments/comments.go
package comments

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	commentstore "github.com/dalemusser/grouphub/internal/app/store/comments"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	userstore "github.com/dalemusser/grouphub/internal/app/store/users"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate handles POST /comments. Any signed-in user may comment on
// any existing material; commenting is not membership-gated.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req createInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	materialID, err := primitive.ObjectIDFromHex(req.MaterialID)
	if err != nil {
		apierrors.RenderValidation(w, "material_id is not a valid id")
		return
	}
	content := sanitize.Text(req.Content)
	if content == "" {
		apierrors.RenderValidation(w, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := materialstore.New(h.DB).GetByID(ctx, materialID); err != nil {
		if err == materialstore.ErrNotFound {
			apierrors.RenderNotFound(w, "material not found")
			return
		}
		h.ErrLog.LogError(r, "load material failed", err)
		apierrors.RenderInternal(w)
		return
	}

	c, err := commentstore.New(h.DB).Create(ctx, models.MaterialComment{
		MaterialID: materialID,
		UserID:     res.UserID,
		Content:    content,
	})
	if err != nil {
		h.ErrLog.LogError(r, "create comment failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, commentResponse{
		ID:         c.ID,
		MaterialID: c.MaterialID,
		UserID:     c.UserID,
		Username:   res.Username,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	})
}

// ServeListByMaterial handles GET /materials/{materialID}/comments,
// newest first.
func (h *Handler) ServeListByMaterial(w http.ResponseWriter, r *http.Request) {
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

	if _, err := materialstore.New(h.DB).GetByID(ctx, materialID); err != nil {
		if err == materialstore.ErrNotFound {
			apierrors.RenderNotFound(w, "material not found")
			return
		}
		h.ErrLog.LogError(r, "load material failed", err)
		apierrors.RenderInternal(w)
		return
	}

	list, err := commentstore.New(h.DB).ListByMaterial(ctx, materialID)
	if err != nil {
		h.ErrLog.LogError(r, "list comments failed", err)
		apierrors.RenderInternal(w)
		return
	}

	usrStore := userstore.New(h.DB)
	out := make([]commentResponse, 0, len(list))
	for _, c := range list {
		entry := commentResponse{
			ID:         c.ID,
			MaterialID: c.MaterialID,
			UserID:     c.UserID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		}
		if u, err := usrStore.GetByID(ctx, c.UserID); err == nil {
			entry.Username = u.Username
		}
		out = append(out, entry)
	}
	httpjson.Write(w, http.StatusOK, out)
}

// HandleEdit handles PUT /comments/{commentID}. Author only.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	commentID, ok := gates.PathID(w, r, "commentID", "comment")
	if !ok {
		return
	}

	var req editInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	content := sanitize.Text(req.Content)
	if content == "" {
		apierrors.RenderValidation(w, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cmtStore := commentstore.New(h.DB)
	c, err := cmtStore.GetByID(ctx, commentID)
	if err == commentstore.ErrNotFound {
		apierrors.RenderNotFound(w, "comment not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load comment failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if c.UserID != res.UserID {
		apierrors.RenderForbidden(w, "only the author can edit a comment")
		return
	}

	if err := cmtStore.UpdateContent(ctx, commentID, content); err != nil {
		if err == commentstore.ErrNotFound {
			apierrors.RenderNotFound(w, "comment not found")
			return
		}
		h.ErrLog.LogError(r, "update comment failed", err)
		apierrors.RenderInternal(w)
		return
	}

	updated, err := cmtStore.GetByID(ctx, commentID)
	if err != nil {
		h.ErrLog.LogError(r, "reload comment failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, commentResponse{
		ID:         updated.ID,
		MaterialID: updated.MaterialID,
		UserID:     updated.UserID,
		Username:   res.Username,
		Content:    updated.Content,
		CreatedAt:  updated.CreatedAt,
		UpdatedAt:  updated.UpdatedAt,
	})
}

// HandleDelete handles DELETE /comments/{commentID}. The author or the
// owner of the commented material may delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	commentID, ok := gates.PathID(w, r, "commentID", "comment")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cmtStore := commentstore.New(h.DB)
	c, err := cmtStore.GetByID(ctx, commentID)
	if err == commentstore.ErrNotFound {
		apierrors.RenderNotFound(w, "comment not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load comment failed", err)
		apierrors.RenderInternal(w)
		return
	}

	allowed := c.UserID == res.UserID
	if !allowed {
		m, err := materialstore.New(h.DB).GetByID(ctx, c.MaterialID)
		if err == nil && m.OwnerID == res.UserID {
			allowed = true
		} else if err != nil && err != materialstore.ErrNotFound {
			h.ErrLog.LogError(r, "load material failed", err)
			apierrors.RenderInternal(w)
			return
		}
	}
	if !allowed {
		apierrors.RenderForbidden(w, "you cannot delete this comment")
		return
	}

	if err := cmtStore.Delete(ctx, commentID); err != nil && err != commentstore.ErrNotFound {
		h.ErrLog.LogError(r, "delete comment failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("comment deleted",
		zap.String("comment_id", commentID.Hex()),
		zap.String("deleted_by", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
