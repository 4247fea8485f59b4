// internal/app/store/labels/labelstore.go
package labelstore

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
	ErrNotFound           = errors.New("label not found")
	ErrDuplicateLabelName = errors.New("a label with this name already exists in this group")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("labels")}
}

// Create inserts a label. Name uniqueness is scoped to the group by the
// (group_id, name_ci) unique index; the min/max range was validated by
// the caller.
func (s *Store) Create(ctx context.Context, l models.Label) (models.Label, error) {
	l.ID = primitive.NewObjectID()
	l.NameCI = text.Fold(l.Name)
	l.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Label{}, ErrDuplicateLabelName
		}
		return models.Label{}, err
	}
	return l, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Label, error) {
	var l models.Label
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return models.Label{}, ErrNotFound
	}
	if err != nil {
		return models.Label{}, err
	}
	return l, nil
}

// ListByGroup returns the group's labels sorted by name.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Label, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var labels []models.Label
	if err := cur.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// ListByIDs fetches labels by ID so assignment payloads can be validated
// against the group they belong to.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var labels []models.Label
	if err := cur.All(ctx, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// DeleteByGroup removes all labels for a group (cascade).
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
