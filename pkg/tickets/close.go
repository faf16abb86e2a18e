package tickets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
)

// RequestClose marks the ticket as waiting for a close confirmation.
func (m *Manager) RequestClose(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionRequestClose)
	if err != nil {
		return nil, err
	}
	return m.commit(ctx, t, next)
}

// CancelClose clears a pending close confirmation.
func (m *Manager) CancelClose(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionCancelClose)
	if err != nil {
		return nil, err
	}
	return m.commit(ctx, t, next)
}

// Close archives the ticket and deletes its channel. The transcript must be generated for the close to go ahead,
// delivering it to the logs channel and the creator is best effort. The record is only marked closed once the
// channel is gone, so a failed close can be confirmed again.
//
// The close outlives the context of the request that asked for it and is bounded by the close timeout instead.
func (m *Manager) Close(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, cfg, next, err := m.prepare(ctx, guildID, channelID, actor, ActionClose)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.settings.CloseTimeout)
	defer cancel()

	l := m.l.With(
		slog.String(logging.KeyGuild, guildID),
		slog.String(logging.KeyChannel, channelID),
		slog.String(logging.KeyUser, actor.UserID),
	)

	ch, err := m.client.Channel(channelID)
	if err != nil {
		return nil, chat.Classify(err, "View Channel", channelID, "get the ticket channel")
	}

	artifact, err := m.transcripts.Generate(ctx, ch)
	if err != nil {
		l.Error("Error generating transcript", slog.String(logging.KeyError, err.Error()))
		if chat.IsMissingPermissions(err) {
			return nil, chat.Classify(err, "Read Message History", channelID, "generate the transcript")
		}
		return nil, errs.Wrap(errs.ExternalCallFailed, err, "the transcript could not be generated")
	}

	closedAt := m.now().UTC()
	t.ClosedBy = actor.UserID
	t.ClosedAt = &closedAt

	res := &Result{Ticket: t}

	if cfg.LogsChannelID != "" {
		_, err := m.client.SendMessage(cfg.LogsChannelID, &discordgo.MessageSend{
			Embed: closedLogEmbed(t, ch.Name, artifact.MessageCount),
			Files: []*discordgo.File{artifact.File()},
		})
		if err != nil {
			l.Warn("Error sending transcript to logs channel", slog.String(logging.KeyError, err.Error()))
			res.warn(chat.Classify(err, "Attach Files", cfg.LogsChannelID, "archive the transcript"))
			m.postWarning(channelID, fmt.Sprintf("Warning: the transcript could not be archived in <#%s>.", cfg.LogsChannelID))
		}
	} else {
		l.Info("No logs channel configured, transcript not archived")
	}

	_, err = m.client.DirectMessage(t.CreatorID, &discordgo.MessageSend{
		Content: fmt.Sprintf("Your ticket **%s** (%s) has been closed. A transcript is attached.", ch.Name, t.TopicLabel),
		Files:   []*discordgo.File{artifact.File()},
	})
	if err != nil {
		// Users can close their DMs, nothing to do about it.
		l.Info("Transcript not sent to ticket creator", slog.String(logging.KeyError, err.Error()))
	}

	m.postWarning(channelID, fmt.Sprintf("This ticket has been closed by <@%s>. The channel will be deleted in %d seconds.",
		actor.UserID, int(m.settings.CloseDelay.Seconds())))

	m.sleep(ctx, m.settings.CloseDelay)

	if err := m.client.DeleteChannel(channelID); err != nil {
		l.Error("Error deleting ticket channel", slog.String(logging.KeyError, err.Error()))
		return nil, chat.Classify(err, "Manage Channels", channelID, "delete the ticket channel")
	}

	next.Apply(t)
	if err := m.tickets.SaveTicket(ctx, t); err != nil {
		l.Error("Error saving closed ticket", slog.String(logging.KeyError, err.Error()))
	}

	l.Info("Ticket closed", slog.String("ticket", t.Name()), slog.String("transcript", artifact.ID))
	return res, nil
}
