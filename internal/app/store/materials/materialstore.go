// internal/app/store/materials/materialstore.go
package materialstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/grouphub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound       = errors.New("material not found")
	ErrDuplicateTitle = errors.New("a material with this title already exists in this course")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("materials")}
}

// Create inserts a material. Title uniqueness is scoped to the course by
// the (course_id, title_ci) unique index. The caller has already enforced
// that exactly one of URL / FilePath is set.
func (s *Store) Create(ctx context.Context, m models.Material) (models.Material, error) {
	m.ID = primitive.NewObjectID()
	m.TitleCI = text.Fold(m.Title)
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Material{}, ErrDuplicateTitle
		}
		return models.Material{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Material, error) {
	var m models.Material
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Material{}, ErrNotFound
	}
	if err != nil {
		return models.Material{}, err
	}
	return m, nil
}

// UpdateInfo rewrites the material's mutable fields. The caller keeps the
// document/url invariant intact before calling.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, m models.Material) error {
	set := bson.M{
		"description": m.Description,
		"type":        m.Type,
		"url":         m.URL,
		"file_path":   m.FilePath,
		"file_name":   m.FileName,
		"file_size":   m.FileSize,
		"updated_at":  time.Now().UTC(),
	}
	if m.Title != "" {
		set["title"] = m.Title
		set["title_ci"] = text.Fold(m.Title)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateTitle
		}
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

// ListByCourse returns the course's materials, newest first.
func (s *Store) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.Material, error) {
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var materials []models.Material
	if err := cur.All(ctx, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// ListIDsByCourse returns just the material IDs for a course; the cascade
// paths use it to fan deletion out to labels and comments.
func (s *Store) ListIDsByCourse(ctx context.Context, courseID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// DeleteByCourse removes all materials for a course (cascade).
func (s *Store) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
