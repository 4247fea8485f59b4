// internal/app/features/materials/routes.go
package materials

import (
	"net/http"

	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// CourseRoutes returns the per-course material endpoints, mounted by the
// courses feature under /courses/{courseID}/materials.
func CourseRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeMaterialsList)
	r.Post("/", h.HandleCreateMaterial)
	r.Get("/labels/{labelID}", h.ServeMaterialsByLabel)
	return r
}

// Routes returns the top-level /materials router. The comment listing for
// a material belongs to the comments feature and is passed in as a plain
// handler func.
func Routes(h *Handler, sm *auth.SessionManager, listComments http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Route("/{materialID}", func(mr chi.Router) {
			mr.Get("/", h.ServeMaterialView)
			mr.Put("/", h.HandleEditMaterial)
			mr.Delete("/", h.HandleDeleteMaterial)
			mr.Get("/download", h.ServeMaterialDownload)
			mr.Get("/labels", h.ServeMaterialLabels)
			mr.Put("/labels", h.HandleSetMaterialLabels)
			mr.Get("/comments", listComments)
		})
	})
	return r
}
