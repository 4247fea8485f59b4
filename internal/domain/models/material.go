// internal/domain/models/material.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Material types.
const (
	MaterialDocument = "document"
	MaterialURL      = "url"
)

// Material is content posted into a course. The payload is mutually
// exclusive: either the file fields or the URL is set, never both and
// never neither. Titles are unique per course (via title_ci).
type Material struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID primitive.ObjectID `bson:"course_id" json:"course_id"`
	OwnerID  primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Title       string `bson:"title" json:"title"`
	TitleCI     string `bson:"title_ci" json:"-"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Type        string `bson:"type" json:"type"` // "document" | "url"

	URL string `bson:"url,omitempty" json:"url,omitempty"`

	// File storage fields - set when the payload is an uploaded file
	FilePath string `bson:"file_path,omitempty" json:"file_path,omitempty"` // storage path (uuid-named)
	FileName string `bson:"file_name,omitempty" json:"file_name,omitempty"` // original filename
	FileSize int64  `bson:"file_size,omitempty" json:"file_size,omitempty"` // size in bytes

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasFile returns true if this material has an uploaded file.
func (m *Material) HasFile() bool {
	return m.FilePath != ""
}

// HasURL returns true if this material has a URL payload.
func (m *Material) HasURL() bool {
	return m.URL != ""
}
