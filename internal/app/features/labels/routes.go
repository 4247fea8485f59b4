// internal/app/features/labels/routes.go
package labels

import "github.com/go-chi/chi/v5"

// Routes returns the label subrouter, mounted by the groups feature under
// /groups/{groupID}/labels.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLabelsList)
	r.Post("/", h.HandleCreateLabel)
	return r
}
