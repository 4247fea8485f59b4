// internal/app/store/oauthstate/store.go
package oauthstate

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists one-time OAuth state tokens so the Google callback can
// reject forged or replayed requests. A TTL index on expires_at reaps
// anything a crashed flow leaves behind.
type Store struct {
	c *mongo.Collection
}

var ErrInvalidState = errors.New("oauth state is invalid or expired")

type stateDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	State     string             `bson:"state"`
	CreatedAt time.Time          `bson:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at"`
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Save records a state token valid for ttl.
func (s *Store) Save(ctx context.Context, state string, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.c.InsertOne(ctx, stateDoc{
		ID:        primitive.NewObjectID(),
		State:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	return err
}

// Validate consumes a state token. Each token is single-use: the delete
// doubles as the existence check.
func (s *Store) Validate(ctx context.Context, state string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"state":      state,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrInvalidState
	}
	return nil
}
