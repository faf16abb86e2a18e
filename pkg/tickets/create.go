package tickets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/topics"
)

// Create opens a ticket for the actor on the given topic.
func (m *Manager) Create(ctx context.Context, guildID string, actor Actor, topicValue string) (*Result, error) {
	l := m.l.With(
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyUser, actor.UserID),
	)

	cfg, err := m.guilds.GetGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}

	if !cfg.IsConfigured() {
		return nil, errs.New(errs.NotConfigured, "guild %s has no ticket category or support role", guildID)
	}

	topic, err := topics.Find(cfg, topicValue)
	if err != nil {
		return nil, err
	}

	channels, err := m.client.GuildChannels(guildID)
	if err != nil {
		return nil, chat.Classify(err, "View Channel", cfg.CategoryID, "list the guild channels")
	}

	if existing, ok := m.openTicketOf(ctx, guildID, channels, cfg.CategoryID, actor.UserID); ok {
		e := errs.New(errs.DuplicateTicket, "user %s already has ticket channel %s", actor.UserID, existing)
		e.ChannelID = existing
		return nil, e
	}

	remaining, err := m.cooldowns.Remaining(ctx, actor.UserID)
	if err != nil {
		// An unavailable cooldown store should not stop tickets being opened.
		l.Warn("Error reading cooldown", slog.String(logging.KeyError, err.Error()))
	} else if remaining > 0 {
		e := errs.New(errs.CooldownActive, "user %s is on cooldown", actor.UserID)
		e.Remaining = remaining
		return nil, e
	}

	t := &entities.Ticket{
		Number:      NextTicketNumber(channels, cfg.CategoryID),
		GuildID:     guildID,
		CreatorID:   actor.UserID,
		CreatorName: actor.Username,
		TopicValue:  topic.Value,
		TopicLabel:  topic.Label,
		CreatedAt:   m.now().UTC(),
	}

	ch, err := m.client.CreateChannel(guildID, discordgo.GuildChannelCreateData{
		Name:                 t.Name(),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                TopicText(t),
		ParentID:             cfg.CategoryID,
		PermissionOverwrites: m.overwrites(guildID, actor.UserID, cfg.SupportRoleID),
	})
	if err != nil {
		return nil, chat.Classify(err, "Manage Channels", cfg.CategoryID, "create the ticket channel")
	}
	t.ChannelID = ch.ID
	l = l.With(slog.String(logging.KeyChannel, ch.ID))

	if err := m.tickets.SaveTicket(ctx, t); err != nil {
		return nil, fmt.Errorf("error saving ticket: %w", err)
	}

	res := &Result{Ticket: t}

	if _, err := m.client.SendMessage(ch.ID, WelcomeMessage(t, cfg.SupportRoleID)); err != nil {
		l.Warn("Error sending welcome message", slog.String(logging.KeyError, err.Error()))
		res.warn(chat.Classify(err, "Send Messages", ch.ID, "post the welcome message"))
	}

	if err := m.cooldowns.Start(ctx, actor.UserID, m.settings.Cooldown); err != nil {
		l.Warn("Error starting cooldown", slog.String(logging.KeyError, err.Error()))
	}

	if cfg.LogsChannelID != "" {
		if _, err := m.client.SendMessage(cfg.LogsChannelID, &discordgo.MessageSend{Embed: createdLogEmbed(t)}); err != nil {
			l.Warn("Error logging ticket creation", slog.String(logging.KeyError, err.Error()))
			res.warn(chat.Classify(err, "Send Messages", cfg.LogsChannelID, "log the ticket"))
			m.postWarning(ch.ID, fmt.Sprintf("Warning: this ticket could not be recorded in <#%s>.", cfg.LogsChannelID))
		}
	}

	l.Info("Ticket created", slog.String("ticket", t.Name()), slog.String("topic", t.TopicValue))
	return res, nil
}

func (m *Manager) overwrites(guildID, creatorID, supportRoleID string) []*discordgo.PermissionOverwrite {
	ow := []*discordgo.PermissionOverwrite{
		// The @everyone role shares the guild ID.
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    creatorID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: memberPermissions,
		},
		{
			ID:    supportRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: memberPermissions,
		},
	}
	if botID := m.client.BotUserID(); botID != "" {
		ow = append(ow, &discordgo.PermissionOverwrite{
			ID:    botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: botPermissions,
		})
	}
	return ow
}

// openTicketOf finds an open ticket channel of the user. Channel topics are checked first, then the ticket records
// of channels that still exist.
func (m *Manager) openTicketOf(ctx context.Context, guildID string, channels []*discordgo.Channel, categoryID, userID string) (string, bool) {
	exists := make(map[string]bool, len(channels))
	for _, ch := range channels {
		if ch == nil {
			continue
		}
		exists[ch.ID] = true

		if ch.ParentID != categoryID || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if md, ok := ParseTopicText(ch.Topic); ok && md.CreatorID == userID {
			return ch.ID, true
		}
	}

	open, err := m.tickets.ListOpenTickets(ctx, guildID)
	if err != nil {
		m.l.Warn("Error listing open tickets",
			slog.String(logging.KeyGuild, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return "", false
	}
	for _, t := range open {
		if t.CreatorID == userID && exists[t.ChannelID] {
			return t.ChannelID, true
		}
	}
	return "", false
}
