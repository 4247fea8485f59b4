// internal/app/features/comments/routes.go
package comments

import (
	"github.com/dalemusser/grouphub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the top-level /comments router. The per-material listing
// is handed to the materials feature as a plain handler func.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{commentID}", h.HandleEdit)
		pr.Delete("/{commentID}", h.HandleDelete)
	})
	return r
}
