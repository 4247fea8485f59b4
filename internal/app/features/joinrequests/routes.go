// internal/app/features/joinrequests/routes.go
package joinrequests

import (
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// GroupRoutes returns the per-group queue listing, mounted by the groups
// feature under /groups/{groupID}/join-requests.
func GroupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}

// Routes returns the top-level /join-requests router for resolving
// individual requests.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/{requestID}", h.HandleRespond)
	})
	return r
}
