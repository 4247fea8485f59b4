// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func render(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// RenderValidation writes a 400 for bad input, policy violations, and
// uniqueness conflicts.
func RenderValidation(w http.ResponseWriter, msg string) {
	render(w, http.StatusBadRequest, msg)
}

// RenderForbidden writes a 403 for authorization failures.
func RenderForbidden(w http.ResponseWriter, msg string) {
	render(w, http.StatusForbidden, msg)
}

// RenderNotFound writes a 404 for absent resources.
func RenderNotFound(w http.ResponseWriter, msg string) {
	render(w, http.StatusNotFound, msg)
}

// RenderUnauthorized writes a 401 when no authenticated user is present.
func RenderUnauthorized(w http.ResponseWriter) {
	render(w, http.StatusUnauthorized, "authentication required")
}

// RenderInternal writes a 500 with a generic message; details belong in
// the logs, not the response.
func RenderInternal(w http.ResponseWriter) {
	render(w, http.StatusInternalServerError, "internal error")
}
