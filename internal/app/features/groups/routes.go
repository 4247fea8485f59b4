// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /groups router. The member, join-request, course, and
// label subrouters are built by their own features and mounted here under
// /{groupID}; they read the groupID param from the route context.
func Routes(h *Handler, sm *auth.SessionManager, members, joinRequests, courses, labels chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeGroupsList)
		pr.Post("/", h.HandleCreateGroup)

		pr.Route("/{groupID}", func(gr chi.Router) {
			gr.Get("/", h.ServeGroupView)
			gr.Put("/", h.HandleEditGroup)
			gr.Delete("/", h.HandleDeleteGroup)

			gr.Mount("/members", members)
			gr.Mount("/join-requests", joinRequests)
			gr.Mount("/courses", courses)
			gr.Mount("/labels", labels)
		})
	})

	return r
}
