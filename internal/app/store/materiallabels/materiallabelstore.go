// internal/app/store/materiallabels/materiallabelstore.go
package materiallabelstore

import (
	"context"
	"time"

	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the material_labels join collection: which labels a
// material carries, each with a number inside the label's range.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("material_labels")}
}

// Assignment is one (label, number) pair to attach to a material.
type Assignment struct {
	LabelID primitive.ObjectID
	Number  int
}

// Replace swaps the material's label set for the given assignments.
// The PUT semantics are whole-set: existing rows go away first, then the
// new rows are inserted. An empty set just clears the labels.
func (s *Store) Replace(ctx context.Context, materialID primitive.ObjectID, assignments []Assignment) error {
	if _, err := s.c.DeleteMany(ctx, bson.M{"material_id": materialID}); err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(assignments))
	for _, a := range assignments {
		docs = append(docs, models.MaterialLabel{
			ID:         primitive.NewObjectID(),
			MaterialID: materialID,
			LabelID:    a.LabelID,
			Number:     a.Number,
			CreatedAt:  now,
		})
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}

// ListByMaterial returns the material's label rows.
func (s *Store) ListByMaterial(ctx context.Context, materialID primitive.ObjectID) ([]models.MaterialLabel, error) {
	cur, err := s.c.Find(ctx, bson.M{"material_id": materialID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MaterialLabel
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByLabel returns the rows for one label across any materials, sorted
// by number ascending so callers can group materials per number.
func (s *Store) ListByLabel(ctx context.Context, labelID primitive.ObjectID) ([]models.MaterialLabel, error) {
	cur, err := s.c.Find(ctx, bson.M{"label_id": labelID},
		options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MaterialLabel
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByMaterial removes the material's label rows (cascade).
func (s *Store) DeleteByMaterial(ctx context.Context, materialID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"material_id": materialID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByMaterials removes label rows for a batch of materials; used by
// the course and group cascades.
func (s *Store) DeleteByMaterials(ctx context.Context, materialIDs []primitive.ObjectID) (int64, error) {
	if len(materialIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"material_id": bson.M{"$in": materialIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
