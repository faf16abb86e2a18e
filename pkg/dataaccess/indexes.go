package dataaccess

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexModels returns the indexes of each collection. Guild configurations and ticket records are upserted by their
// keys, so the keys must be unique or concurrent upserts can insert duplicates.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		guildsCollection: {
			{
				Keys:    bson.D{{Key: "guild_id", Value: 1}},
				Options: options.Index().SetName("guild_id_unique").SetUnique(true),
			},
		},
		ticketsCollection: {
			{
				Keys:    bson.D{{Key: "guild_id", Value: 1}, {Key: "channel_id", Value: 1}},
				Options: options.Index().SetName("guild_channel_unique").SetUnique(true),
			},
		},
	}
}

// EnsureIndexes creates any missing indexes. Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, client *mongo.Client) error {
	db := client.Database(mongoDatabase)
	for collection, models := range indexModels() {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", collection, err)
		}
	}
	return nil
}
