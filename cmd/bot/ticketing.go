package main

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/panel"
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
)

const (
	// ticketCmdName is the command for controlling tickets.
	ticketCmdName = "ticket"

	ticketClaimCmdName   = "claim"
	ticketUnclaimCmdName = "unclaim"
	ticketLockCmdName    = "lock"
	ticketUnlockCmdName  = "unlock"
	ticketRenameCmdName  = "rename"
	ticketAddCmdName     = "add"
	ticketRemoveCmdName  = "remove"
	ticketCloseCmdName   = "close"
	ticketInfoCmdName    = "info"

	forceOptionName = "force"
	nameOptionName  = "name"
	userOptionName  = "user"
)

// ticketCmd is the command for controlling the ticket of the channel it is used in.
var ticketCmd = &discordgo.ApplicationCommand{
	Name:        ticketCmdName,
	Type:        discordgo.ChatApplicationCommand,
	Description: "Control the ticket of this channel.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Name:        ticketClaimCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Claim this ticket.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        forceOptionName,
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Description: "Take the ticket over from whoever has claimed it.",
				},
			},
		},
		{
			Name:        ticketUnclaimCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Release this ticket.",
		},
		{
			Name:        ticketLockCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Stop the ticket creator sending messages.",
		},
		{
			Name:        ticketUnlockCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Let the ticket creator send messages again.",
		},
		{
			Name:        ticketRenameCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Rename this ticket channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        nameOptionName,
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "The new name.",
					Required:    true,
				},
			},
		},
		{
			Name:        ticketAddCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Add a user to this ticket.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        userOptionName,
					Type:        discordgo.ApplicationCommandOptionUser,
					Description: "The user to add.",
					Required:    true,
				},
			},
		},
		{
			Name:        ticketRemoveCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Remove a user from this ticket.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        userOptionName,
					Type:        discordgo.ApplicationCommandOptionUser,
					Description: "The user to remove.",
					Required:    true,
				},
			},
		},
		{
			Name:        ticketCloseCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Close this ticket.",
		},
		{
			Name:        ticketInfoCmdName,
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Description: "Show the details of this ticket.",
		},
	},
}

// ticketOp is a manager operation on the ticket of the interaction's channel.
type ticketOp func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error)

// runTicketAction acknowledges the interaction, runs a state changing operation and announces the result in the
// channel. Rejections and warnings stay private to the requester.
func runTicketAction(c *interaction, action tickets.Action, op ticketOp, announce func(res *tickets.Result) string) error {
	if err := c.deferEphemeral(); err != nil {
		return err
	}

	res, err := op(c.ctx, c.i.GuildID, c.i.ChannelID, c.actor())
	if err != nil {
		return err
	}
	monitoring.TicketActions.WithLabelValues(action.String()).Inc()

	warnings := res.Warnings
	if err := c.announce(announce(res)); err != nil {
		warnings = append(warnings, err)
	}

	if len(warnings) == 0 {
		c.dismiss()
		return nil
	}
	c.warn(warnings)
	return nil
}

func ticketCommandHandler(c *interaction) error {
	sub, opts, err := subcommand(c.i)
	if err != nil {
		return err
	}

	m := c.a.Tickets()
	userID := c.actor().UserID
	switch sub {
	case ticketClaimCmdName:
		force := opts.boolValue(forceOptionName)
		return runTicketAction(c, tickets.ActionClaim,
			func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error) {
				return m.Claim(ctx, guildID, channelID, actor, force)
			},
			func(*tickets.Result) string { return fmt.Sprintf("This ticket has been claimed by <@%s>.", userID) },
		)
	case ticketUnclaimCmdName:
		return unclaimButtonHandler(c)
	case ticketLockCmdName:
		return lockButtonHandler(c)
	case ticketUnlockCmdName:
		return unlockButtonHandler(c)
	case ticketRenameCmdName:
		name := opts.stringValue(nameOptionName)
		return runTicketAction(c, tickets.ActionRename,
			func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error) {
				return m.Rename(ctx, guildID, channelID, actor, name)
			},
			func(res *tickets.Result) string {
				return fmt.Sprintf("This ticket has been renamed to **%s**.", res.ChannelName)
			},
		)
	case ticketAddCmdName:
		target := opts.id(userOptionName)
		return runTicketAction(c, tickets.ActionAddUser,
			func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error) {
				return m.AddUser(ctx, guildID, channelID, actor, target)
			},
			func(*tickets.Result) string { return fmt.Sprintf("<@%s> has been added to this ticket.", target) },
		)
	case ticketRemoveCmdName:
		target := opts.id(userOptionName)
		return runTicketAction(c, tickets.ActionRemoveUser,
			func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error) {
				return m.RemoveUser(ctx, guildID, channelID, actor, target)
			},
			func(*tickets.Result) string { return fmt.Sprintf("<@%s> has been removed from this ticket.", target) },
		)
	case ticketCloseCmdName:
		return requestCloseHandler(c)
	case ticketInfoCmdName:
		if err := c.deferEphemeral(); err != nil {
			return err
		}
		t, err := m.Info(c.ctx, c.i.GuildID, c.i.ChannelID, c.actor())
		if err != nil {
			return err
		}
		return c.replyEmbed(ticketInfoEmbed(t))
	default:
		return fmt.Errorf("unhandled sub command %s", sub)
	}
}

func claimButtonHandler(c *interaction) error {
	m := c.a.Tickets()
	userID := c.actor().UserID
	return runTicketAction(c, tickets.ActionClaim,
		func(ctx context.Context, guildID, channelID string, actor tickets.Actor) (*tickets.Result, error) {
			return m.Claim(ctx, guildID, channelID, actor, false)
		},
		func(*tickets.Result) string { return fmt.Sprintf("This ticket has been claimed by <@%s>.", userID) },
	)
}

func unclaimButtonHandler(c *interaction) error {
	userID := c.actor().UserID
	return runTicketAction(c, tickets.ActionUnclaim, c.a.Tickets().Unclaim,
		func(*tickets.Result) string { return fmt.Sprintf("This ticket has been released by <@%s>.", userID) },
	)
}

func lockButtonHandler(c *interaction) error {
	userID := c.actor().UserID
	return runTicketAction(c, tickets.ActionLock, c.a.Tickets().Lock,
		func(*tickets.Result) string { return fmt.Sprintf("This ticket has been locked by <@%s>.", userID) },
	)
}

func unlockButtonHandler(c *interaction) error {
	userID := c.actor().UserID
	return runTicketAction(c, tickets.ActionUnlock, c.a.Tickets().Unlock,
		func(*tickets.Result) string { return fmt.Sprintf("This ticket has been unlocked by <@%s>.", userID) },
	)
}

// requestCloseHandler asks the requester to confirm closing the ticket.
func requestCloseHandler(c *interaction) error {
	if err := c.deferEphemeral(); err != nil {
		return err
	}
	if _, err := c.a.Tickets().RequestClose(c.ctx, c.i.GuildID, c.i.ChannelID, c.actor()); err != nil {
		return err
	}
	return c.respond(&discordgo.InteractionResponseData{
		Content:    "Are you sure you want to close this ticket? A transcript will be saved and the channel deleted.",
		Components: tickets.CloseConfirmComponents(),
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

func confirmCloseHandler(c *interaction) error {
	if err := c.update("Closing the ticket...", []discordgo.MessageComponent{}); err != nil {
		return err
	}

	if _, err := c.a.Tickets().Close(c.ctx, c.i.GuildID, c.i.ChannelID, c.actor()); err != nil {
		return err
	}
	monitoring.TicketsClosed.Inc()
	monitoring.TicketActions.WithLabelValues(tickets.ActionClose.String()).Inc()

	// The channel, and with it the prompt, is gone. Warnings have been posted in the logs by the manager.
	return nil
}

func cancelCloseHandler(c *interaction) error {
	if err := c.update("Closing has been cancelled.", []discordgo.MessageComponent{}); err != nil {
		return err
	}
	_, err := c.a.Tickets().CancelClose(c.ctx, c.i.GuildID, c.i.ChannelID, c.actor())
	return err
}

func openFromButtonHandler(c *interaction) error {
	value, _ := panel.TopicFromCustomID(c.i.MessageComponentData().CustomID)
	return openTicket(c, value)
}

func openFromMenuHandler(c *interaction) error {
	values := c.i.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("no topic selected")
	}
	return openTicket(c, values[0])
}

// openTicket creates a ticket on the topic for the requester.
func openTicket(c *interaction, topicValue string) error {
	if err := c.deferEphemeral(); err != nil {
		return err
	}

	res, err := c.a.Tickets().Create(c.ctx, c.i.GuildID, c.actor(), topicValue)
	if err != nil {
		return err
	}
	monitoring.TicketsOpened.WithLabelValues(res.Ticket.TopicValue).Inc()

	if err := c.replyEphemeral(fmt.Sprintf("Your ticket has been created: <#%s>", res.Ticket.ChannelID)); err != nil {
		return err
	}
	c.warn(res.Warnings)
	return nil
}

func ticketInfoEmbed(t *entities.Ticket) *discordgo.MessageEmbed {
	claimed := "None"
	if t.ClaimedBy != "" {
		claimed = fmt.Sprintf("<@%s>", t.ClaimedBy)
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket #%d", t.Number),
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Opened by", Value: fmt.Sprintf("<@%s>", t.CreatorID), Inline: true},
			{Name: "Topic", Value: t.TopicLabel, Inline: true},
			{Name: "Claimed by", Value: claimed, Inline: true},
			{Name: "Status", Value: tickets.StateOf(t).DisplayStatus().String(), Inline: true},
			{Name: "Opened", Value: fmt.Sprintf("<t:%d:R>", t.CreatedAt.Unix()), Inline: true},
		},
	}
}
