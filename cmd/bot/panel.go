package main

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/messages"
	"github.com/Jacobbrewer1/helpdesk/pkg/panel"
)

const (
	panelCmdName = "panel"

	panelSendCmdName = "send"

	styleOptionName = "style"
	titleOptionName = "title"
)

var panelCmd = &discordgo.ApplicationCommand{
	Name:        panelCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "Post the panel users open tickets from.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        panelSendCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Send the ticket panel to a channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:         channelOptionName,
					Type:         discordgo.ApplicationCommandOptionChannel,
					Description:  "The channel to post the panel in.",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     true,
				},
				{
					Name:        styleOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "How topics are offered. Buttons fit at most 5 topics.",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Automatic", Value: string(panel.StyleAuto)},
						{Name: "Buttons", Value: string(panel.StyleButtons)},
						{Name: "Select menu", Value: string(panel.StyleMenu)},
					},
				},
				{
					Name:        titleOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The title of the panel.",
				},
				{
					Name:        descriptionOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The text of the panel.",
				},
			},
		},
	},
}

// panelHandler handles the panel command. Only administrators may use it.
func panelHandler(c *interaction) error {
	if !c.actor().IsAdmin() {
		return c.replyEphemeral(messages.ErrAdminRequired)
	}

	sub, opts, err := subcommand(c.i)
	if err != nil {
		return err
	}
	if sub != panelSendCmdName {
		return fmt.Errorf("unhandled sub command %s", sub)
	}

	if err := c.deferEphemeral(); err != nil {
		return err
	}

	cfg, err := c.a.GuildDal().GetGuild(c.ctx, c.i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	msg, err := panel.Message(cfg,
		panel.ParseStyle(opts.stringValue(styleOptionName)),
		opts.stringValue(titleOptionName),
		opts.stringValue(descriptionOptionName),
	)
	if err != nil {
		return err
	}

	channelID := opts.id(channelOptionName)
	if _, err := c.a.Chat().SendMessage(channelID, msg); err != nil {
		return chat.Classify(err, "Send Messages", channelID, "post the panel")
	}
	return c.replyEphemeral(fmt.Sprintf("The ticket panel has been posted in <#%s>.", channelID))
}
