package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Creation is
// idempotent, so this runs unconditionally at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// Unique email backs the duplicate-email conflict on signup.
	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure users.email index: %w", err)
	}

	// Referential-filter indexes used by cascades and nested reads.
	for _, idx := range []struct {
		coll string
		key  string
	}{
		{developerCollection, "user_id"},
		{gameCollection, "developer_id"},
		{commentCollection, "game_id"},
		{commentCollection, "user_id"},
	} {
		_, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: idx.key, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("ensure %s.%s index: %w", idx.coll, idx.key, err)
		}
	}
	return nil
}
