package tickets

import (
	"context"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
)

// Claim makes the actor the handler of the ticket. A ticket claimed by someone else is only taken over when force
// is set.
func (m *Manager) Claim(ctx context.Context, guildID, channelID string, actor Actor, force bool) (*Result, error) {
	action := ActionClaim
	if force {
		action = ActionForceClaim
	}

	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, action)
	if err != nil {
		return nil, err
	}
	return m.commit(ctx, t, next)
}

// Unclaim releases the ticket.
func (m *Manager) Unclaim(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionUnclaim)
	if err != nil {
		return nil, err
	}
	return m.commit(ctx, t, next)
}

// Lock stops the creator sending messages in the ticket.
func (m *Manager) Lock(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionLock)
	if err != nil {
		return nil, err
	}

	if err := m.client.SetPermission(channelID, t.CreatorID, discordgo.PermissionOverwriteTypeMember,
		lockedPermissions, discordgo.PermissionSendMessages); err != nil {
		return nil, chat.Classify(err, "Manage Permissions", channelID, "lock the ticket")
	}
	return m.commit(ctx, t, next)
}

// Unlock gives the creator back their send permission.
func (m *Manager) Unlock(ctx context.Context, guildID, channelID string, actor Actor) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionUnlock)
	if err != nil {
		return nil, err
	}

	if err := m.client.SetPermission(channelID, t.CreatorID, discordgo.PermissionOverwriteTypeMember,
		memberPermissions, 0); err != nil {
		return nil, chat.Classify(err, "Manage Permissions", channelID, "unlock the ticket")
	}
	return m.commit(ctx, t, next)
}

// Rename renames the ticket channel. The name is sanitized first.
func (m *Manager) Rename(ctx context.Context, guildID, channelID string, actor Actor, raw string) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionRename)
	if err != nil {
		return nil, err
	}

	name, err := SanitizeChannelName(raw)
	if err != nil {
		return nil, err
	}

	if _, err := m.client.EditChannel(channelID, &discordgo.ChannelEdit{Name: name}); err != nil {
		return nil, chat.Classify(err, "Manage Channels", channelID, "rename the ticket")
	}

	res, err := m.commit(ctx, t, next)
	if err != nil {
		return nil, err
	}
	res.ChannelName = name
	return res, nil
}

// AddUser lets another user see and write in the ticket.
func (m *Manager) AddUser(ctx context.Context, guildID, channelID string, actor Actor, userID string) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionAddUser)
	if err != nil {
		return nil, err
	}

	if err := m.client.SetPermission(channelID, userID, discordgo.PermissionOverwriteTypeMember,
		memberPermissions, 0); err != nil {
		return nil, chat.Classify(err, "Manage Permissions", channelID, "add the user")
	}
	return m.commit(ctx, t, next)
}

// RemoveUser takes away a user's access to the ticket. The creator cannot be removed.
func (m *Manager) RemoveUser(ctx context.Context, guildID, channelID string, actor Actor, userID string) (*Result, error) {
	t, _, next, err := m.prepare(ctx, guildID, channelID, actor, ActionRemoveUser)
	if err != nil {
		return nil, err
	}

	if userID == t.CreatorID {
		return nil, errs.New(errs.InvalidTransition, "the ticket creator cannot be removed")
	}

	if err := m.client.DeletePermission(channelID, userID); err != nil {
		return nil, chat.Classify(err, "Manage Permissions", channelID, "remove the user")
	}
	return m.commit(ctx, t, next)
}

// Info returns the ticket of the channel. Staff and the creator may see it.
func (m *Manager) Info(ctx context.Context, guildID, channelID string, actor Actor) (*entities.Ticket, error) {
	t, cfg, err := m.ticketFor(ctx, guildID, channelID)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff(cfg) && actor.UserID != t.CreatorID {
		return nil, errs.New(errs.Forbidden, "Only staff and the ticket creator can see this.")
	}

	m.l.Debug("Ticket info requested",
		slog.String(logging.KeyChannel, channelID),
		slog.String(logging.KeyUser, actor.UserID),
	)
	return t, nil
}
