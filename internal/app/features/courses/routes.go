// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// GroupRoutes returns the per-group course endpoints, mounted by the
// groups feature under /groups/{groupID}/courses.
func GroupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCoursesList)
	r.Post("/", h.HandleCreateCourse)
	return r
}

// Routes returns the top-level /courses router. The materials subrouter is
// built by the materials feature and mounted under /{courseID}/materials.
func Routes(h *Handler, sm *auth.SessionManager, materials chi.Router) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Route("/{courseID}", func(cr chi.Router) {
			cr.Get("/", h.ServeCourseView)
			cr.Put("/", h.HandleEditCourse)
			cr.Delete("/", h.HandleDeleteCourse)
			cr.Mount("/materials", materials)
		})
	})
	return r
}
