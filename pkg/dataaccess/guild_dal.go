package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const guildDalName = "guild_dal"

type GuildDal interface {
	// GetGuild gets the configuration of a guild, creating an empty one if it does not exist yet.
	GetGuild(ctx context.Context, guildID string) (*entities.GuildConfig, error)

	// ReplaceGuild overwrites the whole configuration of a guild.
	ReplaceGuild(ctx context.Context, guildID string, guild *entities.GuildConfig) error

	// PatchGuild updates only the fields set on the patch.
	PatchGuild(ctx context.Context, guildID string, patch entities.GuildPatch) error
}

type guildDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildDal creates a new guild data access layer.
func NewGuildDal(logger *slog.Logger) GuildDal {
	l := logger.With(slog.String(logging.KeyDal, guildDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (g *guildDalImpl) collection() *mongo.Collection {
	return g.client.Database(mongoDatabase).Collection(guildsCollection)
}

func observe(dal, query, collection string) *prometheus.Timer {
	monitoring.MongoTotalRequests.WithLabelValues(dal, query, mongoDatabase, collection).Inc()
	return prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(dal, query, mongoDatabase, collection))
}

func (g *guildDalImpl) GetGuild(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	t := observe(guildDalName, "get_guild", guildsCollection)
	defer t.ObserveDuration()

	// Upsert so the first access to a guild creates its record.
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	guild := new(entities.GuildConfig)
	err := g.collection().FindOneAndUpdate(ctx,
		bson.M{"guild_id": guildID},
		bson.M{"$setOnInsert": bson.M{"topics": bson.A{}}},
		opts,
	).Decode(guild)
	if err != nil {
		return nil, fmt.Errorf("error getting guild: %w", err)
	}

	if guild.Topics == nil {
		guild.Topics = []entities.Topic{}
	}
	return guild, nil
}

func (g *guildDalImpl) ReplaceGuild(ctx context.Context, guildID string, guild *entities.GuildConfig) error {
	t := observe(guildDalName, "replace_guild", guildsCollection)
	defer t.ObserveDuration()

	doc := *guild
	doc.GuildID = guildID
	if doc.Topics == nil {
		doc.Topics = []entities.Topic{}
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := g.collection().ReplaceOne(ctx, bson.M{"guild_id": guildID}, doc, opts); err != nil {
		return fmt.Errorf("error replacing guild: %w", err)
	}
	return nil
}

func (g *guildDalImpl) PatchGuild(ctx context.Context, guildID string, patch entities.GuildPatch) error {
	set := patchFields(patch)
	if len(set) == 0 {
		return nil
	}

	t := observe(guildDalName, "patch_guild", guildsCollection)
	defer t.ObserveDuration()

	// Only the named fields are $set, so concurrent patches of different fields do not clobber each other.
	opts := options.Update().SetUpsert(true)
	if _, err := g.collection().UpdateOne(ctx, bson.M{"guild_id": guildID}, bson.M{"$set": set}, opts); err != nil {
		return fmt.Errorf("error patching guild: %w", err)
	}
	return nil
}

// patchFields builds the $set document for a patch.
func patchFields(patch entities.GuildPatch) bson.M {
	set := bson.M{}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.SupportRoleID != nil {
		set["support_role_id"] = *patch.SupportRoleID
	}
	if patch.LogsChannelID != nil {
		set["logs_channel_id"] = *patch.LogsChannelID
	}
	if patch.Topics != nil {
		topics := *patch.Topics
		if topics == nil {
			topics = []entities.Topic{}
		}
		set["topics"] = topics
	}
	return set
}
