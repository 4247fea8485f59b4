// internal/app/features/materials/types.go
package materials

import (
	"github.com/dalemusser/grouphub/internal/app/system/groupaccess"
	"github.com/dalemusser/grouphub/internal/domain/models"
)

// materialInput is the JSON create/update payload for URL materials and
// for metadata edits. File materials are created via multipart instead.
type materialInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// labelAssignment is one entry of the PUT /materials/{id}/labels payload.
type labelAssignment struct {
	LabelID string `json:"label_id"`
	Number  int    `json:"number"`
}

// labelsInput is the whole-set label replacement payload.
type labelsInput struct {
	Labels []labelAssignment `json:"labels"`
}

// labeledMaterials groups a label's materials under one number.
type labeledMaterials struct {
	Number    int               `json:"number"`
	Materials []models.Material `json:"materials"`
}

// materialWithAccess pairs a loaded material, its course, and the caller's
// group snapshot.
type materialWithAccess struct {
	Material models.Material
	Course   models.Course
	Access   groupaccess.Access
}
