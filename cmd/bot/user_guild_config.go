package main

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/messages"
)

const (
	// setupCmdName is the command for all configuration commands.
	setupCmdName = "setup"

	// setupCategoryCmdName sets the category tickets are created in.
	setupCategoryCmdName = "category"

	// setupSupportRoleCmdName sets the role that handles tickets.
	setupSupportRoleCmdName = "support-role"

	// setupLogsChannelCmdName sets the channel logs and transcripts are sent to.
	setupLogsChannelCmdName = "logs-channel"

	// setupShowCmdName shows the configuration.
	setupShowCmdName = "show"

	// setupResetCmdName clears the configuration.
	setupResetCmdName = "reset"

	// categoryOptionName is the name of the category option.
	categoryOptionName = "category"

	// roleOptionName is the name of the role option.
	roleOptionName = "role"

	// channelOptionName is the name of the channel option.
	channelOptionName = "channel"
)

var (
	// setupCmd is the command for all configuration commands.
	setupCmd = &discordgo.ApplicationCommand{
		Name:        setupCmdName,
		Type:        discordgo.ChatApplicationCommand,
		Description: "Configure tickets for this server.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        setupCategoryCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Set the category ticket channels are created in.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         categoryOptionName,
						Type:         discordgo.ApplicationCommandOptionChannel,
						Description:  "The category for ticket channels.",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
						Required:     true,
					},
				},
			},
			{
				Name:        setupSupportRoleCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Set the role that handles tickets.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        roleOptionName,
						Type:        discordgo.ApplicationCommandOptionRole,
						Description: "The support role.",
						Required:    true,
					},
				},
			},
			{
				Name:        setupLogsChannelCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Set the channel ticket logs and transcripts are sent to.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         channelOptionName,
						Type:         discordgo.ApplicationCommandOptionChannel,
						Description:  "The logs channel.",
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						Required:     true,
					},
				},
			},
			{
				Name:        setupShowCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Show the ticket configuration.",
			},
			{
				Name:        setupResetCmdName,
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Description: "Clear the ticket configuration, including every topic.",
			},
		},
	}
)

// setupHandler handles the setup command. Only administrators may use it.
func setupHandler(c *interaction) error {
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
	switch sub {
	case setupCategoryCmdName:
		id := opts.id(categoryOptionName)
		if err := guilds.PatchGuild(c.ctx, c.i.GuildID, entities.GuildPatch{CategoryID: &id}); err != nil {
			return fmt.Errorf("error saving category: %w", err)
		}
		return c.replyEphemeral(fmt.Sprintf("Ticket channels will be created in <#%s>.", id))
	case setupSupportRoleCmdName:
		id := opts.id(roleOptionName)
		if err := guilds.PatchGuild(c.ctx, c.i.GuildID, entities.GuildPatch{SupportRoleID: &id}); err != nil {
			return fmt.Errorf("error saving support role: %w", err)
		}
		return c.replyEphemeral(fmt.Sprintf("Tickets will be handled by <@&%s>.", id))
	case setupLogsChannelCmdName:
		id := opts.id(channelOptionName)
		if err := guilds.PatchGuild(c.ctx, c.i.GuildID, entities.GuildPatch{LogsChannelID: &id}); err != nil {
			return fmt.Errorf("error saving logs channel: %w", err)
		}
		return c.replyEphemeral(fmt.Sprintf("Ticket logs and transcripts will be sent to <#%s>.", id))
	case setupShowCmdName:
		cfg, err := guilds.GetGuild(c.ctx, c.i.GuildID)
		if err != nil {
			return fmt.Errorf("error getting guild config: %w", err)
		}
		return c.replyEmbed(configEmbed(cfg))
	case setupResetCmdName:
		cfg, err := guilds.GetGuild(c.ctx, c.i.GuildID)
		if err != nil {
			return fmt.Errorf("error getting guild config: %w", err)
		}
		cfg.Reset()
		if err := guilds.ReplaceGuild(c.ctx, c.i.GuildID, cfg); err != nil {
			return fmt.Errorf("error resetting guild config: %w", err)
		}
		return c.replyEphemeral("The ticket configuration has been reset.")
	default:
		return fmt.Errorf("unhandled sub command %s", sub)
	}
}

func mentionOrUnset(format, id string) string {
	if id == "" {
		return "Not set"
	}
	return fmt.Sprintf(format, id)
}

// configEmbed summarises the configuration of a guild.
func configEmbed(cfg *entities.GuildConfig) *discordgo.MessageEmbed {
	status := "Ready"
	if !cfg.IsConfigured() {
		status = "Incomplete, a category and support role are required"
	} else if len(cfg.Topics) == 0 {
		status = "Incomplete, add a topic with `/topic add`"
	}

	return &discordgo.MessageEmbed{
		Title: "Ticket Configuration",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: mentionOrUnset("<#%s>", cfg.CategoryID), Inline: true},
			{Name: "Support role", Value: mentionOrUnset("<@&%s>", cfg.SupportRoleID), Inline: true},
			{Name: "Logs channel", Value: mentionOrUnset("<#%s>", cfg.LogsChannelID), Inline: true},
			{Name: fmt.Sprintf("Topics (%d)", len(cfg.Topics)), Value: topicList(cfg.Topics)},
			{Name: "Status", Value: status},
		},
	}
}

func topicList(topics []entities.Topic) string {
	if len(topics) == 0 {
		return "None"
	}

	var b strings.Builder
	for _, t := range topics {
		b.WriteString(fmt.Sprintf("**%s** `%s`", t.Display(), t.Value))
		if t.Description != "" {
			b.WriteString(": " + t.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
