// internal/app/features/materials/create.go
package materials

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreateMaterial handles POST /courses/{courseID}/materials. The
// payload is exactly one of: a multipart upload ("file" field) making a
// document material, or a JSON body with a url making a URL material.
// Gated on the group's post_permission.
func (h *Handler) HandleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	courseID, ok := gates.PathID(w, r, "courseID", "course")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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
	if !access.CanPost() {
		apierrors.RenderForbidden(w, "you cannot post materials in this group")
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.createFromUpload(ctx, w, r, courseID, res.UserID)
		return
	}
	h.createFromURL(ctx, w, r, courseID, res.UserID)
}

// createFromURL inserts a URL material from a JSON body.
func (h *Handler) createFromURL(ctx context.Context, w http.ResponseWriter, r *http.Request, courseID, userID primitive.ObjectID) {
	var req materialInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := inputval.ValidateTitle(req.Title); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if req.URL == "" {
		apierrors.RenderValidation(w, "a material needs either a file or a url")
		return
	}
	if err := inputval.ValidateMaterialURL(req.URL); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	m, err := materialstore.New(h.DB).Create(ctx, models.Material{
		CourseID:    courseID,
		OwnerID:     userID,
		Title:       req.Title,
		Description: sanitize.Text(req.Description),
		Type:        models.MaterialURL,
		URL:         req.URL,
	})
	if err == materialstore.ErrDuplicateTitle {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "create material failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, m)
}

// createFromUpload inserts a document material from a multipart form with
// fields title, description, and file.
func (h *Handler) createFromUpload(ctx context.Context, w http.ResponseWriter, r *http.Request, courseID, userID primitive.ObjectID) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+(1<<20)) // payload plus form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		apierrors.RenderValidation(w, "upload is too large or malformed")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if err := inputval.ValidateTitle(title); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if r.FormValue("url") != "" {
		apierrors.RenderValidation(w, "a material takes a file or a url, not both")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.RenderValidation(w, "a material needs either a file or a url")
		return
	}
	defer file.Close()

	if err := inputval.ValidateMaterialFileName(header.Filename); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err := inputval.ValidateFileSize(header.Size, h.MaxBytes); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}

	path, err := h.Files.Save(file, header.Filename)
	if err != nil {
		h.ErrLog.LogError(r, "store upload failed", err)
		apierrors.RenderInternal(w)
		return
	}

	m, err := materialstore.New(h.DB).Create(ctx, models.Material{
		CourseID:    courseID,
		OwnerID:     userID,
		Title:       title,
		Description: sanitize.Text(r.FormValue("description")),
		Type:        models.MaterialDocument,
		FilePath:    path,
		FileName:    header.Filename,
		FileSize:    header.Size,
	})
	if err != nil {
		// Don't leave the stored file orphaned.
		if rmErr := h.Files.Remove(path); rmErr != nil {
			h.Log.Warn("orphan cleanup failed", zap.String("path", path), zap.Error(rmErr))
		}
		if err == materialstore.ErrDuplicateTitle {
			apierrors.RenderValidation(w, err.Error())
			return
		}
		h.ErrLog.LogError(r, "create material failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, m)
}
