// internal/app/features/courses/groupcourses.go
package courses

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/inputval"
	"github.com/dalemusser/grouphub/internal/app/system/sanitize"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// ServeCoursesList handles GET /groups/{groupID}/courses. Members and the
// owner may browse.
func (h *Handler) ServeCoursesList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
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
	if !access.IsMemberOrOwner() {
		apierrors.RenderForbidden(w, "you are not a member of this group")
		return
	}

	courses, err := coursestore.New(h.DB).ListByGroup(ctx, groupID)
	if err != nil {
		h.ErrLog.LogError(r, "list courses failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	httpjson.Write(w, http.StatusOK, courses)
}

// HandleCreateCourse handles POST /groups/{groupID}/courses. Restricted
// to the owner and group admins.
func (h *Handler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	var req courseInput
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := inputval.ValidateName(req.Name); err != nil {
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
		apierrors.RenderForbidden(w, "only the owner or a group admin can create courses")
		return
	}

	course, err := coursestore.New(h.DB).Create(ctx, models.Course{
		GroupID:     groupID,
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
	})
	if err == coursestore.ErrDuplicateCourseName {
		apierrors.RenderValidation(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "create course failed", err)
		apierrors.RenderInternal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, course)
}
