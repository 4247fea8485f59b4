// internal/app/features/groups/groupdelete.go
package groups

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	"github.com/dalemusser/grouphub/internal/app/policy/grouppolicy"
	commentstore "github.com/dalemusser/grouphub/internal/app/store/comments"
	coursestore "github.com/dalemusser/grouphub/internal/app/store/courses"
	groupstore "github.com/dalemusser/grouphub/internal/app/store/groups"
	joinrequeststore "github.com/dalemusser/grouphub/internal/app/store/joinrequests"
	labelstore "github.com/dalemusser/grouphub/internal/app/store/labels"
	materiallabelstore "github.com/dalemusser/grouphub/internal/app/store/materiallabels"
	materialstore "github.com/dalemusser/grouphub/internal/app/store/materials"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDeleteGroup handles DELETE /groups/{groupID}. Owner only. The
// cascade removes memberships, join requests, labels, courses, and every
// material, label row, and comment under those courses, then the group
// document last so a crashed cascade can be re-run.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	groupID, ok := gates.PathID(w, r, "groupID", "group")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	grpStore := groupstore.New(h.DB)
	group, err := grpStore.GetByID(ctx, groupID)
	if err == groupstore.ErrNotFound {
		apierrors.RenderNotFound(w, "group not found")
		return
	}
	if err != nil {
		h.ErrLog.LogError(r, "load group failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if !grouppolicy.IsOwner(res.UserID, group) {
		apierrors.RenderForbidden(w, "only the group owner can delete the group")
		return
	}

	if err := h.cascadeDelete(ctx, r, groupID); err != nil {
		apierrors.RenderInternal(w)
		return
	}

	if err := grpStore.Delete(ctx, groupID); err != nil && err != groupstore.ErrNotFound {
		h.ErrLog.LogError(r, "delete group failed", err)
		apierrors.RenderInternal(w)
		return
	}

	h.Log.Info("group deleted",
		zap.String("group_id", groupID.Hex()),
		zap.String("owner_id", res.UserID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// cascadeDelete removes everything that hangs off a group: for each course
// the materials plus their label rows and comments, then the courses,
// labels, join requests, and memberships.
func (h *Handler) cascadeDelete(ctx context.Context, r *http.Request, groupID primitive.ObjectID) error {
	crsStore := coursestore.New(h.DB)
	matStore := materialstore.New(h.DB)
	mlStore := materiallabelstore.New(h.DB)
	cmtStore := commentstore.New(h.DB)

	courses, err := crsStore.ListByGroup(ctx, groupID)
	if err != nil {
		h.ErrLog.LogError(r, "cascade: list courses failed", err)
		return err
	}
	for _, course := range courses {
		matIDs, err := matStore.ListIDsByCourse(ctx, course.ID)
		if err != nil {
			h.ErrLog.LogError(r, "cascade: list materials failed", err)
			return err
		}
		if _, err := mlStore.DeleteByMaterials(ctx, matIDs); err != nil {
			h.ErrLog.LogError(r, "cascade: delete material labels failed", err)
			return err
		}
		if _, err := cmtStore.DeleteByMaterials(ctx, matIDs); err != nil {
			h.ErrLog.LogError(r, "cascade: delete comments failed", err)
			return err
		}
		if _, err := matStore.DeleteByCourse(ctx, course.ID); err != nil {
			h.ErrLog.LogError(r, "cascade: delete materials failed", err)
			return err
		}
	}
	if _, err := crsStore.DeleteByGroup(ctx, groupID); err != nil {
		h.ErrLog.LogError(r, "cascade: delete courses failed", err)
		return err
	}
	if _, err := labelstore.New(h.DB).DeleteByGroup(ctx, groupID); err != nil {
		h.ErrLog.LogError(r, "cascade: delete labels failed", err)
		return err
	}
	if _, err := joinrequeststore.New(h.DB).DeleteByGroup(ctx, groupID); err != nil {
		h.ErrLog.LogError(r, "cascade: delete join requests failed", err)
		return err
	}
	if _, err := membershipstore.New(h.DB).DeleteByGroup(ctx, groupID); err != nil {
		h.ErrLog.LogError(r, "cascade: delete memberships failed", err)
		return err
	}
	return nil
}
