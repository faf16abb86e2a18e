package tickets

import (
	"slices"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

// Status is the lifecycle status of a ticket.
type Status int

const (
	// StatusOpen is an unclaimed, unlocked ticket.
	StatusOpen Status = iota

	// StatusInProgress is a claimed, unlocked ticket.
	StatusInProgress

	// StatusLocked is a ticket where the creator cannot send messages, claimed or not.
	StatusLocked

	// StatusClosing is a ticket with a pending close confirmation.
	StatusClosing

	// StatusClosed is a closed ticket. It is terminal.
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusLocked:
		return "Locked"
	case StatusClosing:
		return "Closing"
	case StatusClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// State is the part of a ticket the lifecycle depends on.
type State struct {
	ClaimedBy string
	Locked    bool
	Closed    bool

	// CloseRequesters each hold a pending close confirmation. A confirmation belongs to the user that asked for it.
	CloseRequesters []string
}

// StateOf extracts the state of a ticket.
func StateOf(t *entities.Ticket) State {
	return State{
		ClaimedBy:       t.ClaimedBy,
		Locked:          t.Locked,
		Closed:          t.Closed,
		CloseRequesters: t.CloseRequestedBy,
	}
}

// Apply writes the state onto a ticket.
func (s State) Apply(t *entities.Ticket) {
	t.ClaimedBy = s.ClaimedBy
	t.Locked = s.Locked
	t.Closed = s.Closed
	t.CloseRequestedBy = s.CloseRequesters
}

// Status derives the status from the state.
func (s State) Status() Status {
	switch {
	case s.Closed:
		return StatusClosed
	case len(s.CloseRequesters) > 0:
		return StatusClosing
	case s.Locked:
		return StatusLocked
	case s.ClaimedBy != "":
		return StatusInProgress
	default:
		return StatusOpen
	}
}

// DisplayStatus is the status shown on the control panel. A pending close confirmation is private to the
// requester, so the panel keeps showing the underlying status.
func (s State) DisplayStatus() Status {
	s.CloseRequesters = nil
	return s.Status()
}

// Action is something an actor can do to a ticket.
type Action int

const (
	ActionClaim Action = iota
	ActionForceClaim
	ActionUnclaim
	ActionLock
	ActionUnlock
	ActionRename
	ActionAddUser
	ActionRemoveUser
	ActionRequestClose
	ActionCancelClose
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionClaim:
		return "claim"
	case ActionForceClaim:
		return "force_claim"
	case ActionUnclaim:
		return "unclaim"
	case ActionLock:
		return "lock"
	case ActionUnlock:
		return "unlock"
	case ActionRename:
		return "rename"
	case ActionAddUser:
		return "add_user"
	case ActionRemoveUser:
		return "remove_user"
	case ActionRequestClose:
		return "request_close"
	case ActionCancelClose:
		return "cancel_close"
	case ActionClose:
		return "close"
	default:
		return "unknown"
	}
}

// Transition applies an action to a state, returning the new state or the reason it was rejected.
func Transition(s State, action Action, actorID string) (State, error) {
	if s.Closed {
		return s, errs.New(errs.NotATicketChannel, "the ticket is closed")
	}

	switch action {
	case ActionClaim:
		switch s.ClaimedBy {
		case "":
			s.ClaimedBy = actorID
		case actorID:
			return s, errs.New(errs.AlreadyClaimed, "already claimed by the requester")
		default:
			e := errs.New(errs.AlreadyClaimedByOther, "claimed by another user")
			e.UserID = s.ClaimedBy
			return s, e
		}
	case ActionForceClaim:
		s.ClaimedBy = actorID
	case ActionUnclaim:
		if s.ClaimedBy == "" {
			return s, errs.New(errs.InvalidTransition, "the ticket is not claimed")
		}
		s.ClaimedBy = ""
	case ActionLock:
		if s.Locked {
			return s, errs.New(errs.InvalidTransition, "the ticket is already locked")
		}
		s.Locked = true
	case ActionUnlock:
		if !s.Locked {
			return s, errs.New(errs.InvalidTransition, "the ticket is not locked")
		}
		s.Locked = false
	case ActionRename, ActionAddUser, ActionRemoveUser:
		// No effect on the state.
	case ActionRequestClose:
		s.CloseRequesters = withRequester(s.CloseRequesters, actorID)
	case ActionCancelClose:
		if !slices.Contains(s.CloseRequesters, actorID) {
			return s, errs.New(errs.InvalidTransition, "there is no close request to cancel")
		}
		s.CloseRequesters = withoutRequester(s.CloseRequesters, actorID)
	case ActionClose:
		if !slices.Contains(s.CloseRequesters, actorID) {
			return s, errs.New(errs.InvalidTransition, "closing must be confirmed first")
		}
		s.CloseRequesters = nil
		s.Closed = true
	default:
		return s, errs.New(errs.InvalidTransition, "unknown action %d", int(action))
	}
	return s, nil
}

// withRequester returns a copy of the requesters including the user.
func withRequester(requesters []string, userID string) []string {
	if slices.Contains(requesters, userID) {
		return requesters
	}
	out := make([]string, 0, len(requesters)+1)
	out = append(out, requesters...)
	return append(out, userID)
}

// withoutRequester returns a copy of the requesters without the user, nil when none are left.
func withoutRequester(requesters []string, userID string) []string {
	var out []string
	for _, r := range requesters {
		if r != userID {
			out = append(out, r)
		}
	}
	return out
}

// Actor is the user performing an action.
type Actor struct {
	UserID      string
	Username    string
	RoleIDs     []string
	Permissions int64
}

// ActorFromMember builds an actor from the member of an interaction.
func ActorFromMember(m *discordgo.Member) Actor {
	if m == nil || m.User == nil {
		return Actor{}
	}
	return Actor{
		UserID:      m.User.ID,
		Username:    m.User.Username,
		RoleIDs:     m.Roles,
		Permissions: m.Permissions,
	}
}

// IsAdmin reports whether the actor has the Administrator permission.
func (a Actor) IsAdmin() bool {
	return a.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// IsStaff reports whether the actor may manage tickets of the guild.
func (a Actor) IsStaff(cfg *entities.GuildConfig) bool {
	if a.IsAdmin() {
		return true
	}
	return cfg.SupportRoleID != "" && slices.Contains(a.RoleIDs, cfg.SupportRoleID)
}

// Authorize checks the actor may perform the action on the ticket. Staff may do anything, the ticket creator
// may only request, cancel and confirm closing.
func Authorize(action Action, actor Actor, cfg *entities.GuildConfig, t *entities.Ticket) error {
	if actor.IsStaff(cfg) {
		return nil
	}

	switch action {
	case ActionRequestClose, ActionCancelClose, ActionClose:
		if actor.UserID == t.CreatorID {
			return nil
		}
	}

	if cfg.SupportRoleID != "" {
		return errs.New(errs.Forbidden, "You need the <@&%s> role to %s tickets.", cfg.SupportRoleID, action)
	}
	return errs.New(errs.Forbidden, "Only administrators can %s tickets.", action)
}
