package main

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/messages"
	"github.com/Jacobbrewer1/helpdesk/pkg/topics"
)

const (
	topicCmdName = "topic"

	topicAddCmdName    = "add"
	topicRemoveCmdName = "remove"
	topicListCmdName   = "list"

	labelOptionName       = "label"
	valueOptionName       = "value"
	descriptionOptionName = "description"
	emojiOptionName       = "emoji"
)

var topicCmd = &discordgo.ApplicationCommand{
	Name:        topicCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "Manage the topics users can open tickets for.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        topicAddCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Add a topic.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        labelOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The name shown on the panel.",
					Required:    true,
				},
				{
					Name:        valueOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "A unique key made of letters, digits and underscores.",
					Required:    true,
				},
				{
					Name:        descriptionOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "A short description shown on the panel.",
				},
				{
					Name:        emojiOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "An emoji shown before the name.",
				},
			},
		},
		{
			Name:        topicRemoveCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Remove a topic.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        valueOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The key of the topic.",
					Required:    true,
				},
			},
		},
		{
			Name:        topicListCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "List the topics.",
		},
	},
}

// topicHandler handles the topic command. Only administrators may use it.
func topicHandler(c *interaction) error {
	if !c.actor().IsAdmin() {
		return c.replyEphemeral(messages.ErrAdminRequired)
	}

	sub, opts, err := subcommand(c.i)
	if err != nil {
		return err
	}

	if err := c.deferEphemeral(); err != nil {
		return err
	}

	guilds := c.a.GuildDal()
	cfg, err := guilds.GetGuild(c.ctx, c.i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	switch sub {
	case topicAddCmdName:
		added, err := topics.Add(cfg, entities.Topic{
			Label:       opts.stringValue(labelOptionName),
			Value:       opts.stringValue(valueOptionName),
			Description: opts.stringValue(descriptionOptionName),
			Emoji:       opts.stringValue(emojiOptionName),
		})
		if err != nil {
			return err
		}
		if err := guilds.PatchGuild(c.ctx, c.i.GuildID, entities.GuildPatch{Topics: &cfg.Topics}); err != nil {
			return fmt.Errorf("error saving topics: %w", err)
		}
		return c.replyEphemeral(fmt.Sprintf("Added topic **%s** (`%s`). Send a new panel with `/panel send` to offer it.", added.Display(), added.Value))
	case topicRemoveCmdName:
		removed, err := topics.Remove(cfg, opts.stringValue(valueOptionName))
		if err != nil {
			return err
		}
		if err := guilds.PatchGuild(c.ctx, c.i.GuildID, entities.GuildPatch{Topics: &cfg.Topics}); err != nil {
			return fmt.Errorf("error saving topics: %w", err)
		}
		return c.replyEphemeral(fmt.Sprintf("Removed topic **%s** (`%s`).", removed.Display(), removed.Value))
	case topicListCmdName:
		return c.replyEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("Topics (%d/%d)", len(cfg.Topics), topics.MaxTopics),
			Description: topicList(cfg.Topics),
			Color:       0x5865F2,
		})
	default:
		return fmt.Errorf("unhandled sub command %s", sub)
	}
}
