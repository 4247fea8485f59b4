// internal/app/features/courses/course.go
package courses

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	commentstore "github.com/dalemusser/grouphub/internal/app/store/comments"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	materiallabelstore "github.com/dalemusser/grouphub/internal/app/store/materiallabels"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// loadCourseAccess resolves a courseID to its course and the caller's
// group snapshot. A false return means a response has been written.
func (h *Handler) loadCourseAccess(ctx context.Context, w http.ResponseWriter, r *http.Request, courseID, userID primitive.ObjectID) (course courseWithAccess, ok bool) {
	c, err := coursestore.New(h.DB).GetByID(ctx, courseID)
	if err == coursestore.ErrNotFound {
		apierrors.RenderNotFound(w, "course not found")
		return course, false
	}
	if err != nil {
		h.ErrLog.LogError(r, "load course failed", err)
		apierrors.RenderInternal(w)
		return course, false
	}
	access, err := groupaccess.Load(ctx, h.DB, c.GroupID, userID)
	if err == groupaccess.ErrGroupNotFound {
		apierrors.RenderNotFound(w, "course not found")
		return course, false
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return course, false
	}
	return courseWithAccess{Course: c, Access: access}, true
}

// ServeCourseView handles GET /courses/{courseID}. Members and the owner
// of the enclosing group may read.
func (h *Handler) ServeCourseView(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	courseID, ok := gates.PathID(w, r, "courseID", "course")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ca, ok := h.loadCourseAccess(ctx, w, r, courseID, res.UserID)
	if !ok {
		return
	}
	if !ca.Access.IsMemberOrOwner() {
		apierrors.RenderForbidden(w, "you are not a member of this group")
		return
	}
	httpjson.Write(w, http.StatusOK, ca.Course)
}

// HandleEditCourse handles PUT /courses/{courseID}. Owner only.
func (h *Handler) HandleEditCourse(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	courseID, ok := gates.PathID(w, r, "courseID", "course")
	if !ok {
		return
	}

	var req courseInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name != "" {
		if err := inputval.ValidateName(req.Name); err != nil {
			apierrors.RenderValidation(w, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ca, ok := h.loadCourseAccess(ctx, w, r, courseID, res.UserID)
	if !ok {
		return
	}
	if !ca.Access.IsOwner() {
		apierrors.RenderForbidden(w, "only the group owner can edit courses")
		return
	}

	crsStore := coursestore.New(h.DB)
	err := crsStore.UpdateInfo(ctx, courseID, req.Name, sanitize.Text(req.Description))
	if err == coursestore.ErrDuplicateCourseName {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err == coursestore.ErrNotFound {
		apierrors.RenderNotFound(w, "course not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "update course failed", err)
		apierrors.RenderInternal(w)
		return
	}

	updated, err := crsStore.GetByID(ctx, courseID)
	if err != nil {
		h.ErrLog.LogError(r, "reload course failed", err)
		apierrors.RenderInternal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDeleteCourse handles DELETE /courses/{courseID}. Owner only. The
// course's materials, their label rows, and their comments go with it.
func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
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

	ca, ok := h.loadCourseAccess(ctx, w, r, courseID, res.UserID)
	if !ok {
		return
	}
	if !ca.Access.IsOwner() {
		apierrors.RenderForbidden(w, "only the group owner can delete courses")
		return
	}

	matStore := materialstore.New(h.DB)
	matIDs, err := matStore.ListIDsByCourse(ctx, courseID)
	if err != nil {
		h.ErrLog.LogError(r, "cascade: list materials failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if _, err := materiallabelstore.New(h.DB).DeleteByMaterials(ctx, matIDs); err != nil {
		h.ErrLog.LogError(r, "cascade: delete material labels failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if _, err := commentstore.New(h.DB).DeleteByMaterials(ctx, matIDs); err != nil {
		h.ErrLog.LogError(r, "cascade: delete comments failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if _, err := matStore.DeleteByCourse(ctx, courseID); err != nil {
		h.ErrLog.LogError(r, "cascade: delete materials failed", err)
		apierrors.RenderInternal(w)
		return
	}

	if err := coursestore.New(h.DB).Delete(ctx, courseID); err != nil && err != coursestore.ErrNotFound {
		h.ErrLog.LogError(r, "delete course failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("course deleted",
		zap.String("course_id", courseID.Hex()),
		zap.String("group_id", ca.Course.GroupID.Hex()),
		zap.String("deleted_by", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
