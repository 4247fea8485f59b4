// internal/app/features/courses/types.go
package courses

import (
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// courseInput is the create/update payload. On update, an empty name
// keeps the current one.
type courseInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// courseWithAccess pairs a loaded course with the caller's group snapshot.
type courseWithAccess struct {
	Course models.Course
	Access groupaccess.Access
}
