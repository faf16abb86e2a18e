package dataaccess

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModelsAreUniqueOnUpsertKeys(t *testing.T) {
	tests := []struct {
		collection string
		keys       bson.D
	}{
		{
			collection: guildsCollection,
			keys:       bson.D{{Key: "guild_id", Value: 1}},
		},
		{
			collection: ticketsCollection,
			keys:       bson.D{{Key: "guild_id", Value: 1}, {Key: "channel_id", Value: 1}},
		},
	}

	models := indexModels()
	require.Len(t, models, len(tests))
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			require.Len(t, models[tt.collection], 1)
			m := models[tt.collection][0]
			require.Equal(t, tt.keys, m.Keys)
			require.NotNil(t, m.Options)
			require.NotNil(t, m.Options.Unique)
			require.True(t, *m.Options.Unique)
		})
	}
}
