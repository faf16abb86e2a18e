package entities

// GuildConfig is the ticketing configuration for a guild.
type GuildConfig struct {
	// GuildID is the ID of the guild.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// CategoryID is the ID of the category that ticket channels are created in.
	CategoryID string `json:"category_id" bson:"category_id"`

	// SupportRoleID is the ID of the role that handles tickets.
	SupportRoleID string `json:"support_role_id" bson:"support_role_id"`

	// LogsChannelID is the ID of the channel that ticket logs and transcripts are sent to.
	LogsChannelID string `json:"logs_channel_id" bson:"logs_channel_id"`

	// Topics are the topics offered on the ticket panel, in display order.
	Topics []Topic `json:"topics" bson:"topics"`
}

// IsConfigured reports whether tickets can be created for the guild.
func (g *GuildConfig) IsConfigured() bool {
	return g.CategoryID != "" && g.SupportRoleID != ""
}

// Topic returns the topic with the given value.
func (g *GuildConfig) Topic(value string) (Topic, bool) {
	for _, t := range g.Topics {
		if t.Value == value {
			return t, true
		}
	}
	return Topic{}, false
}

// Reset clears everything except the guild ID.
func (g *GuildConfig) Reset() {
	*g = GuildConfig{
		GuildID: g.GuildID,
		Topics:  []Topic{},
	}
}

// GuildPatch holds the fields of a GuildConfig to update. Nil fields are left untouched.
type GuildPatch struct {
	CategoryID    *string
	SupportRoleID *string
	LogsChannelID *string
	Topics        *[]Topic
}
