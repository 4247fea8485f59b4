// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/grouphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("comment not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("material_comments")}
}

func (s *Store) Create(ctx context.Context, c models.MaterialComment) (models.MaterialComment, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.MaterialComment{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MaterialComment, error) {
	var c models.MaterialComment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.MaterialComment{}, ErrNotFound
	}
	if err != nil {
		return models.MaterialComment{}, err
	}
	return c, nil
}

// UpdateContent replaces the comment text.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"content":    content,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByMaterial returns the material's comments, newest first.
func (s *Store) ListByMaterial(ctx context.Context, materialID primitive.ObjectID) ([]models.MaterialComment, error) {
	cur, err := s.c.Find(ctx, bson.M{"material_id": materialID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.MaterialComment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByMaterial removes the material's comments (cascade).
func (s *Store) DeleteByMaterial(ctx context.Context, materialID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"material_id": materialID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByMaterials removes comments for a batch of materials; used by
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
