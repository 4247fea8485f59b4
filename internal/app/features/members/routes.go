// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns the member subrouter, mounted by the groups feature under
// /groups/{groupID}/members. Authentication middleware is applied by the
// parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeMembersList)
	r.Post("/", h.HandleJoin)

	r.Get("/self", h.ServeSelf)
	r.Delete("/self", h.HandleLeave)

	r.Get("/{userID}", h.ServeMemberView)
	r.Put("/{userID}", h.HandleRoleChange)
	r.Delete("/{userID}", h.HandleRemoveMember)

	return r
}
