// internal/app/features/groups/grouplist.go
package groups

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/grouphub/internal/app/features/errors"
	groupstore "github.com/dalemusser/grouphub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/grouphub/internal/app/store/memberships"
	"github.com/dalemusser/grouphub/internal/app/system/gates"
	"github.com/dalemusser/grouphub/internal/app/system/httpjson"
	"github.com/dalemusser/grouphub/internal/app/system/timeouts"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// ServeGroupsList handles GET /groups: the discoverable groups (open and
// request-to-join). Invite-only groups never show up here.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	groups, err := groupstore.New(h.DB).ListPublic(ctx)
	if err != nil {
		h.ErrLog.LogError(r, "list groups failed", err)
		apierrors.RenderInternal(w)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	httpjson.Write(w, http.StatusOK, groups)
}

// ServeUserGroups handles GET /user/groups: every group the caller owns
// or belongs to, whatever its join type.
func (h *Handler) ServeUserGroups(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	grpStore := groupstore.New(h.DB)
	owned, err := grpStore.ListByOwner(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogError(r, "list owned groups failed", err)
		apierrors.RenderInternal(w)
		return
	}

	memberships, err := membershipstore.New(h.DB).ListByUser(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogError(r, "list memberships failed", err)
		apierrors.RenderInternal(w)
		return
	}

	out := make([]groupDetail, 0, len(owned)+len(memberships))
	seen := map[string]bool{}
	for _, g := range owned {
		out = append(out, groupDetail{Group: g, Role: "owner"})
		seen[g.ID.Hex()] = true
	}
	for _, m := range memberships {
		if seen[m.GroupID.Hex()] {
			continue
		}
		g, err := grpStore.GetByID(ctx, m.GroupID)
		if err == groupstore.ErrNotFound {
			continue
		}
		if err != nil {
			h.ErrLog.LogError(r, "load member group failed", err)
			apierrors.RenderInternal(w)
			return
		}
		out = append(out, groupDetail{Group: g, Role: m.Role})
	}

	httpjson.Write(w, http.StatusOK, out)
}
