package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/messages"
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"github.com/google/uuid"
)

// responder answers interactions.
type responder struct {
	respond  func(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	followup func(i *discordgo.Interaction, params *discordgo.WebhookParams) (*discordgo.Message, error)
	remove   func(i *discordgo.Interaction) error
}

func sessionResponder(s *discordgo.Session) responder {
	return responder{
		respond: func(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		followup: func(i *discordgo.Interaction, params *discordgo.WebhookParams) (*discordgo.Message, error) {
			return s.FollowupMessageCreate(i, true, params)
		},
		remove: func(i *discordgo.Interaction) error {
			return s.InteractionResponseDelete(i)
		},
	}
}

// interaction is a single interaction being handled.
type interaction struct {
	ctx context.Context
	a   IApp
	i   *discordgo.InteractionCreate
	l   *slog.Logger
	r   responder

	// id correlates the log lines of the interaction.
	id string

	// deferred is set once a deferred response has been sent, later responses are followups.
	deferred bool

	// responded is set once the initial response has been sent.
	responded bool
}

func newInteraction(ctx context.Context, a IApp, i *discordgo.InteractionCreate) *interaction {
	id := uuid.New().String()
	l := a.Log().With(
		slog.String(logging.KeyInteraction, id),
		slog.String(logging.KeyGuild, i.GuildID),
		slog.String(logging.KeyChannel, i.ChannelID),
	)
	if u := interactionUser(i); u != nil {
		l = l.With(slog.String(logging.KeyUser, u.ID))
	}

	return &interaction{
		ctx: ctx,
		a:   a,
		i:   i,
		l:   l,
		r:   sessionResponder(a.Session()),
		id:  id,
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// actor is the member that triggered the interaction.
func (c *interaction) actor() tickets.Actor {
	return tickets.ActorFromMember(c.i.Member)
}

// respond sends the response data. Once the interaction has been answered the data is sent as a followup.
func (c *interaction) respond(data *discordgo.InteractionResponseData) error {
	if c.deferred || c.responded {
		_, err := c.r.followup(c.i.Interaction, &discordgo.WebhookParams{
			Content:         data.Content,
			Embeds:          data.Embeds,
			Components:      data.Components,
			AllowedMentions: data.AllowedMentions,
			Flags:           data.Flags,
		})
		if err != nil {
			return fmt.Errorf("error sending followup: %w", err)
		}
		return nil
	}

	err := c.r.respond(c.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	c.responded = true
	return nil
}

// replyEphemeral sends a message only the requester can see.
func (c *interaction) replyEphemeral(content string) error {
	return c.respond(&discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// replyEmbed sends an embed only the requester can see.
func (c *interaction) replyEmbed(embed *discordgo.MessageEmbed) error {
	return c.respond(&discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
}

// deferEphemeral acknowledges the interaction so slow work can follow. The eventual response is private.
func (c *interaction) deferEphemeral() error {
	err := c.r.respond(c.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}
	c.deferred = true
	return nil
}

// update replaces the message the component belongs to.
func (c *interaction) update(content string, components []discordgo.MessageComponent) error {
	err := c.r.respond(c.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
	if err != nil {
		return fmt.Errorf("error updating message: %w", err)
	}
	c.responded = true
	return nil
}

// announce posts a message everyone in the channel can see, without pinging anyone.
func (c *interaction) announce(content string) error {
	_, err := c.a.Chat().SendMessage(c.i.ChannelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		return chat.Classify(err, "Send Messages", c.i.ChannelID, "announce the change")
	}
	return nil
}

// dismiss removes the deferred response once there is nothing left to tell the requester.
func (c *interaction) dismiss() {
	if err := c.r.remove(c.i.Interaction); err != nil {
		c.l.Warn("Error removing deferred response", slog.String(logging.KeyError, err.Error()))
	}
}

// warn tells the requester about side effects that failed without stopping the operation.
func (c *interaction) warn(warnings []error) {
	for _, w := range warnings {
		c.l.Warn("Operation completed with warning", slog.String(logging.KeyError, w.Error()))
		if err := c.replyEphemeral(messages.ForError(w)); err != nil {
			c.l.Error("Error sending warning", slog.String(logging.KeyError, err.Error()))
		}
	}
}

// fail tells the requester why the interaction failed.
func (c *interaction) fail(err error) {
	if err := c.replyEphemeral(messages.ForError(err)); err != nil {
		c.l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}
}
