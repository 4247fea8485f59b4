// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth methods.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
)

// User is an authenticated principal. GroupHub only stores what it needs to
// authenticate and display a user; all authority is derived per group from
// ownership and membership, never from a global role.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Email    string `bson:"email" json:"email"`
	EmailCI  string `bson:"email_ci" json:"-"`
	Username string `bson:"username" json:"username"`

	AuthMethod   string `bson:"auth_method" json:"-"` // "password" | "google"
	PasswordHash []byte `bson:"password_hash,omitempty" json:"-"`

	Status string `bson:"status" json:"-"` // "active" | "disabled"

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
