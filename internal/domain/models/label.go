// internal/domain/models/label.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Label is a group-scoped tag axis with a numeric range. Names are unique
// per group (via name_ci). Only group admins and the owner create labels.
type Label struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group_id"`

	Name   string `bson:"name" json:"name"`
	NameCI string `bson:"name_ci" json:"-"`

	MinValue int `bson:"min_value" json:"min_value"`
	MaxValue int `bson:"max_value" json:"max_value"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MaterialLabel tags a material with a label at a numeric position.
// At most one document per (material_id, label_id).
type MaterialLabel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MaterialID primitive.ObjectID `bson:"material_id" json:"material_id"`
	LabelID    primitive.ObjectID `bson:"label_id" json:"label_id"`
	Number     int                `bson:"number" json:"number"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
}
