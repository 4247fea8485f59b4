// internal/app/features/comments/types.go
package comments

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createInput is the POST /comments payload.
type createInput struct {
	MaterialID string `json:"material_id"`
	Content    string `json:"content"`
}

// editInput is the PUT /comments/{commentID} payload.
type editInput struct {
	Content string `json:"content"`
}

// commentResponse is one comment with the author's display name.
type commentResponse struct {
	ID         primitive.ObjectID `json:"id"`
	MaterialID primitive.ObjectID `json:"material_id"`
	UserID     primitive.ObjectID `json:"user_id"`
	Username   string             `json:"username,omitempty"`
	Content    string             `json:"content"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  *time.Time         `json:"updated_at,omitempty"`
}
