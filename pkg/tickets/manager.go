package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/transcript"
)

const (
	// DefaultCooldown is how long a user waits between opening tickets.
	DefaultCooldown = 5 * time.Minute

	// DefaultCloseDelay is how long a closed ticket channel stays before it is deleted.
	DefaultCloseDelay = 5 * time.Second

	// DefaultCloseTimeout bounds closing a ticket. Transcripts of long tickets take many history pages.
	DefaultCloseTimeout = 30 * time.Minute

	// DefaultHistoryScanWindow is how many recent messages are searched for the control panel.
	DefaultHistoryScanWindow = 50

	// maxHistoryScanWindow is the most messages a single history request returns.
	maxHistoryScanWindow = 100
)

const (
	// memberPermissions are granted to everyone taking part in a ticket.
	memberPermissions = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionAttachFiles

	// botPermissions are granted to the bot on its ticket channels.
	botPermissions = memberPermissions | discordgo.PermissionEmbedLinks

	// lockedPermissions are left to the creator of a locked ticket.
	lockedPermissions = discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory
)

// Settings tune the ticket flows.
type Settings struct {
	// Cooldown is how long a user waits between opening tickets. Zero disables it.
	Cooldown time.Duration

	// CloseDelay is how long a closed ticket channel stays before it is deleted.
	CloseDelay time.Duration

	// CloseTimeout bounds closing a ticket. The close runs on past the interaction that asked for it.
	CloseTimeout time.Duration

	// HistoryScanWindow is how many recent messages are searched for the control panel.
	HistoryScanWindow int
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Cooldown:          DefaultCooldown,
		CloseDelay:        DefaultCloseDelay,
		CloseTimeout:      DefaultCloseTimeout,
		HistoryScanWindow: DefaultHistoryScanWindow,
	}
}

// Result is the outcome of a ticket operation that succeeded, possibly with warnings about side effects that did
// not.
type Result struct {
	// Ticket is the ticket after the operation.
	Ticket *entities.Ticket

	// ChannelName is the new name of the channel after a rename.
	ChannelName string

	// Warnings are failures that did not stop the operation.
	Warnings []error
}

func (r *Result) warn(err error) {
	r.Warnings = append(r.Warnings, err)
}

// Manager runs the ticket flows of every guild.
type Manager struct {
	l           *slog.Logger
	client      chat.Client
	guilds      dataaccess.GuildDal
	tickets     dataaccess.TicketDal
	cooldowns   dataaccess.CooldownDal
	transcripts transcript.Generator
	settings    Settings

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewManager creates a new ticket manager.
func NewManager(
	l *slog.Logger,
	client chat.Client,
	guilds dataaccess.GuildDal,
	tickets dataaccess.TicketDal,
	cooldowns dataaccess.CooldownDal,
	transcripts transcript.Generator,
	settings Settings,
) *Manager {
	if settings.HistoryScanWindow <= 0 || settings.HistoryScanWindow > maxHistoryScanWindow {
		settings.HistoryScanWindow = DefaultHistoryScanWindow
	}
	if settings.CloseTimeout <= 0 {
		settings.CloseTimeout = DefaultCloseTimeout
	}

	return &Manager{
		l:           l,
		client:      client,
		guilds:      guilds,
		tickets:     tickets,
		cooldowns:   cooldowns,
		transcripts: transcripts,
		settings:    settings,
		now:         time.Now,
		sleep:       sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Settings returns the settings the manager runs with.
func (m *Manager) Settings() Settings {
	return m.settings
}

// ticketFor loads the ticket of a channel. Channels without a record are recognised from their topic text and a
// record is rebuilt for them.
func (m *Manager) ticketFor(ctx context.Context, guildID, channelID string) (*entities.Ticket, *entities.GuildConfig, error) {
	cfg, err := m.guilds.GetGuild(ctx, guildID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting guild config: %w", err)
	}

	t, err := m.tickets.GetTicket(ctx, guildID, channelID)
	switch {
	case err == nil:
		if t.Closed {
			return nil, nil, errs.New(errs.NotATicketChannel, "ticket %s is closed", t.Name())
		}
		return t, cfg, nil
	case !errors.Is(err, dataaccess.ErrNotFound):
		return nil, nil, fmt.Errorf("error getting ticket: %w", err)
	}

	ch, err := m.client.Channel(channelID)
	if err != nil {
		if chat.IsUnknownResource(err) {
			return nil, nil, errs.New(errs.NotATicketChannel, "channel %s does not exist", channelID)
		}
		return nil, nil, chat.Classify(err, "View Channel", channelID, "get the channel")
	}

	md, ok := ParseTopicText(ch.Topic)
	if !ok || ch.GuildID != guildID {
		return nil, nil, errs.New(errs.NotATicketChannel, "channel %s is not a ticket", channelID)
	}

	number, _ := ticketNumber(ch.Name)
	t = &entities.Ticket{
		Number:     number,
		GuildID:    guildID,
		ChannelID:  channelID,
		CreatorID:  md.CreatorID,
		TopicValue: md.TopicValue,
		TopicLabel: md.TopicValue,
		CreatedAt:  m.now().UTC(),
	}
	if topic, ok := cfg.Topic(md.TopicValue); ok {
		t.TopicLabel = topic.Label
	}

	if err := m.tickets.SaveTicket(ctx, t); err != nil {
		m.l.Warn("Error saving rebuilt ticket record",
			slog.String(logging.KeyChannel, channelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
	return t, cfg, nil
}

// prepare loads the ticket, checks the actor may perform the action and computes the resulting state.
func (m *Manager) prepare(ctx context.Context, guildID, channelID string, actor Actor, action Action) (*entities.Ticket, *entities.GuildConfig, State, error) {
	t, cfg, err := m.ticketFor(ctx, guildID, channelID)
	if err != nil {
		return nil, nil, State{}, err
	}

	if err := Authorize(action, actor, cfg, t); err != nil {
		return nil, nil, State{}, err
	}

	next, err := Transition(StateOf(t), action, actor.UserID)
	if err != nil {
		return nil, nil, State{}, err
	}
	return t, cfg, next, nil
}

// findControlPanel searches the recent history of the ticket for the bot's control panel message.
func (m *Manager) findControlPanel(channelID string) (*discordgo.Message, error) {
	msgs, err := m.client.Messages(channelID, m.settings.HistoryScanWindow, "")
	if err != nil {
		return nil, chat.Classify(err, "Read Message History", channelID, "read the ticket history")
	}

	botID := m.client.BotUserID()
	for _, msg := range msgs {
		if IsControlPanel(msg, botID) {
			return msg, nil
		}
	}
	return nil, errs.New(errs.ControlPanelNotFound, "no control panel in the last %d messages of %s", m.settings.HistoryScanWindow, channelID)
}

// refreshControlPanel redraws the control panel for the ticket's current state.
func (m *Manager) refreshControlPanel(t *entities.Ticket) error {
	msg, err := m.findControlPanel(t.ChannelID)
	if err != nil {
		return err
	}

	_, err = m.client.EditMessage(&discordgo.MessageEdit{
		ID:         msg.ID,
		Channel:    t.ChannelID,
		Embed:      ControlPanelEmbed(t),
		Components: ControlPanelComponents(t),
	})
	if err != nil {
		return chat.Classify(err, "Send Messages", t.ChannelID, "update the control panel")
	}
	return nil
}

// commit saves the new state of the ticket and, when the visible status changed, redraws the control panel.
func (m *Manager) commit(ctx context.Context, t *entities.Ticket, next State) (*Result, error) {
	prev := StateOf(t)
	next.Apply(t)
	if err := m.tickets.SaveTicket(ctx, t); err != nil {
		return nil, fmt.Errorf("error saving ticket: %w", err)
	}

	res := &Result{Ticket: t}
	if prev.ClaimedBy != next.ClaimedBy || prev.Locked != next.Locked {
		if err := m.refreshControlPanel(t); err != nil {
			m.l.Warn("Control panel not refreshed",
				slog.String(logging.KeyChannel, t.ChannelID),
				slog.String(logging.KeyError, err.Error()),
			)
			res.warn(err)
		}
	}
	return res, nil
}

// postWarning posts a notice in the ticket channel. Failures are only logged.
func (m *Manager) postWarning(channelID, content string) {
	if _, err := m.client.SendMessage(channelID, &discordgo.MessageSend{Content: content}); err != nil {
		m.l.Warn("Error posting warning in ticket",
			slog.String(logging.KeyChannel, channelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}
