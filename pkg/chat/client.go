package chat

import (
	"github.com/Jacobbrewer1/discordgo"
)

// Client is the part of the Discord REST API that ticket operations use.
type Client interface {
	// BotUserID returns the ID of the bot user.
	BotUserID() string

	// GuildChannels lists the channels of a guild.
	GuildChannels(guildID string) ([]*discordgo.Channel, error)

	// Channel gets a channel by ID.
	Channel(channelID string) (*discordgo.Channel, error)

	// CreateChannel creates a channel in a guild.
	CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// EditChannel edits a channel.
	EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error)

	// DeleteChannel deletes a channel.
	DeleteChannel(channelID string) error

	// SetPermission creates or replaces a permission overwrite on a channel.
	SetPermission(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error

	// DeletePermission removes a permission overwrite from a channel.
	DeletePermission(channelID, targetID string) error

	// SendMessage sends a message to a channel.
	SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)

	// EditMessage edits a message.
	EditMessage(data *discordgo.MessageEdit) (*discordgo.Message, error)

	// Messages lists up to limit messages of a channel, newest first, before the given message ID.
	Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)

	// DirectMessage sends a message to a user's DM channel.
	DirectMessage(userID string, data *discordgo.MessageSend) (*discordgo.Message, error)
}

type sessionClient struct {
	s *discordgo.Session
}

// NewSessionClient wraps a discord session.
func NewSessionClient(s *discordgo.Session) Client {
	return &sessionClient{s: s}
}

func (c *sessionClient) BotUserID() string {
	if c.s.State == nil || c.s.State.User == nil {
		return ""
	}
	return c.s.State.User.ID
}

func (c *sessionClient) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	return c.s.GuildChannels(guildID)
}

func (c *sessionClient) Channel(channelID string) (*discordgo.Channel, error) {
	return c.s.Channel(channelID)
}

func (c *sessionClient) CreateChannel(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	return c.s.GuildChannelCreateComplex(guildID, data)
}

func (c *sessionClient) EditChannel(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	return c.s.ChannelEditComplex(channelID, data)
}

func (c *sessionClient) DeleteChannel(channelID string) error {
	_, err := c.s.ChannelDelete(channelID)
	return err
}

func (c *sessionClient) SetPermission(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	return c.s.ChannelPermissionSet(channelID, targetID, targetType, allow, deny)
}

func (c *sessionClient) DeletePermission(channelID, targetID string) error {
	return c.s.ChannelPermissionDelete(channelID, targetID)
}

func (c *sessionClient) SendMessage(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return c.s.ChannelMessageSendComplex(channelID, data)
}

func (c *sessionClient) EditMessage(data *discordgo.MessageEdit) (*discordgo.Message, error) {
	return c.s.ChannelMessageEditComplex(data)
}

func (c *sessionClient) Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return c.s.ChannelMessages(channelID, limit, beforeID, "", "")
}

func (c *sessionClient) DirectMessage(userID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	dm, err := c.s.UserChannelCreate(userID)
	if err != nil {
		return nil, err
	}
	return c.s.ChannelMessageSendComplex(dm.ID, data)
}
