// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here are the concurrency-correctness mechanism for the
whole service: duplicate membership/join-request creation under concurrent
requests is rejected by Mongo, caught in the stores, and surfaced as a
validation failure. There is no application-level locking.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(name string, err error) {
		if err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", ensureUsers(ctx, db))
	ensure("groups", ensureGroups(ctx, db))
	ensure("group_memberships", ensureGroupMemberships(ctx, db))
	ensure("join_requests", ensureJoinRequests(ctx, db))
	ensure("courses", ensureCourses(ctx, db))
	ensure("materials", ensureMaterials(ctx, db))
	ensure("labels", ensureLabels(ctx, db))
	ensure("material_labels", ensureMaterialLabels(ctx, db))
	ensure("material_comments", ensureMaterialComments(ctx, db))
	ensure("oauth_states", ensureOAuthStates(ctx, db))

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	logger.Info("indexes ensured")
	return nil
}

// createAll creates the desired indexes, tolerating the conflict Mongo
// reports when an equivalent index already exists under another name.
func createAll(ctx context.Context, c *mongo.Collection, idx []mongo.IndexModel) error {
	_, err := c.Indexes().CreateMany(ctx, idx)
	if err != nil && strings.Contains(err.Error(), "IndexOptionsConflict") {
		return nil
	}
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_username"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("groups"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_group_name"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_group_owner"),
		},
		{
			Keys:    bson.D{{Key: "join_type", Value: 1}},
			Options: options.Index().SetName("idx_group_join_type"),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("group_memberships"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_membership"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_membership_user"),
		},
	})
}

func ensureJoinRequests(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("join_requests"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_join_request"),
		},
	})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("courses"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_course_name"),
		},
	})
}

func ensureMaterials(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("materials"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "title_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_material_title"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_material_owner"),
		},
	})
}

func ensureLabels(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("labels"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_label_name"),
		},
	})
}

func ensureMaterialLabels(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("material_labels"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "material_id", Value: 1}, {Key: "label_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_material_label"),
		},
		{
			Keys:    bson.D{{Key: "label_id", Value: 1}},
			Options: options.Index().SetName("idx_material_label_label"),
		},
	})
}

func ensureMaterialComments(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("material_comments"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "material_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_comment_material"),
		},
	})
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return createAll(ctx, db.Collection("oauth_states"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_oauth_state"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_ttl"),
		},
	})
}
