// internal/app/features/members/types.go
package members

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// joinInput is the POST /groups/{groupID}/members payload. UserID empty
// means the caller is joining themselves; a role may only be chosen when
// an edit-authorized member adds someone directly.
type joinInput struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

// roleInput is the PUT /groups/{groupID}/members/{userID} payload.
type roleInput struct {
	Role string `json:"role"`
}

// memberResponse is one membership row with the user's display name.
type memberResponse struct {
	GroupID   primitive.ObjectID `json:"group_id"`
	UserID    primitive.ObjectID `json:"user_id"`
	Username  string             `json:"username,omitempty"`
	Role      string             `json:"role"`
	CreatedAt time.Time          `json:"joined_at"`
}

// pendingResponse is returned when a join attempt lands in the request
// queue instead of creating a membership.
type pendingResponse struct {
	Status    string             `json:"status"` // "pending"
	RequestID primitive.ObjectID `json:"request_id"`
}
