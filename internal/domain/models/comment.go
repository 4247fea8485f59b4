// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaterialComment is a comment attached to a material. Only the author may
// edit it; the author or the material's owner may delete it.
type MaterialComment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MaterialID primitive.ObjectID `bson:"material_id" json:"material_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`

	Content string `bson:"content" json:"content"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
