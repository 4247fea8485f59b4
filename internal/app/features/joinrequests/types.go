// internal/app/features/joinrequests/types.go
package joinrequests

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondInput is the POST /join-requests/{requestID} payload.
type respondInput struct {
	Action string `json:"action"` // "accept" | "decline"
}

// requestResponse is one pending request with the requester's name.
type requestResponse struct {
	ID        primitive.ObjectID `json:"id"`
	GroupID   primitive.ObjectID `json:"group_id"`
	UserID    primitive.ObjectID `json:"user_id"`
	Username  string             `json:"username,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
