package tickets

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Status
	}{
		{name: "open", state: State{}, want: StatusOpen},
		{name: "claimed", state: State{ClaimedBy: "s1"}, want: StatusInProgress},
		{name: "locked unclaimed", state: State{Locked: true}, want: StatusLocked},
		{name: "locked claimed", state: State{ClaimedBy: "s1", Locked: true}, want: StatusLocked},
		{name: "closing", state: State{ClaimedBy: "s1", CloseRequesters: []string{"u1"}}, want: StatusClosing},
		{name: "closed", state: State{CloseRequesters: []string{"u1"}, Closed: true}, want: StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.state.Status())
		})
	}
}

func TestTransitionClaim(t *testing.T) {
	s, err := Transition(State{}, ActionClaim, "s1")
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, s.Status())
	require.Equal(t, "s1", s.ClaimedBy)

	// Claiming again as the same user is a notice and changes nothing.
	again, err := Transition(s, ActionClaim, "s1")
	require.True(t, errs.Is(err, errs.AlreadyClaimed))
	require.Equal(t, s, again)

	_, err = Transition(s, ActionClaim, "s2")
	require.True(t, errs.Is(err, errs.AlreadyClaimedByOther))
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Equal(t, "s1", e.UserID)

	forced, err := Transition(s, ActionForceClaim, "s2")
	require.NoError(t, err)
	require.Equal(t, "s2", forced.ClaimedBy)

	unclaimed, err := Transition(forced, ActionUnclaim, "s2")
	require.NoError(t, err)
	require.Equal(t, StatusOpen, unclaimed.Status())

	_, err = Transition(unclaimed, ActionUnclaim, "s2")
	require.True(t, errs.Is(err, errs.InvalidTransition))
}

func TestTransitionLockRestoresStatus(t *testing.T) {
	for _, start := range []State{{}, {ClaimedBy: "s1"}} {
		before := start.Status()

		locked, err := Transition(start, ActionLock, "s1")
		require.NoError(t, err)
		require.Equal(t, StatusLocked, locked.Status())

		_, err = Transition(locked, ActionLock, "s1")
		require.True(t, errs.Is(err, errs.InvalidTransition))

		unlocked, err := Transition(locked, ActionUnlock, "s1")
		require.NoError(t, err)
		require.Equal(t, before, unlocked.Status())
		require.Equal(t, start, unlocked)
	}

	_, err := Transition(State{}, ActionUnlock, "s1")
	require.True(t, errs.Is(err, errs.InvalidTransition))
}

func TestTransitionClose(t *testing.T) {
	start := State{ClaimedBy: "s1", Locked: true}

	_, err := Transition(start, ActionClose, "s1")
	require.True(t, errs.Is(err, errs.InvalidTransition))

	closing, err := Transition(start, ActionRequestClose, "u1")
	require.NoError(t, err)
	require.Equal(t, StatusClosing, closing.Status())
	require.Equal(t, StatusLocked, closing.DisplayStatus())

	cancelled, err := Transition(closing, ActionCancelClose, "u1")
	require.NoError(t, err)
	require.Equal(t, start, cancelled)

	_, err = Transition(closing, ActionClose, "s1")
	require.True(t, errs.Is(err, errs.InvalidTransition), "only the requester can confirm")

	closed, err := Transition(closing, ActionClose, "u1")
	require.NoError(t, err)
	require.Equal(t, StatusClosed, closed.Status())

	for _, action := range []Action{ActionClaim, ActionUnlock, ActionRename, ActionAddUser, ActionRequestClose, ActionClose} {
		_, err := Transition(closed, action, "s1")
		require.True(t, errs.Is(err, errs.NotATicketChannel), action.String())
	}
}

func TestCloseConfirmationsBelongToRequester(t *testing.T) {
	s, err := Transition(State{}, ActionRequestClose, "u1")
	require.NoError(t, err)
	s, err = Transition(s, ActionRequestClose, "s1")
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "s1"}, s.CloseRequesters)

	// Asking twice keeps one confirmation.
	again, err := Transition(s, ActionRequestClose, "s1")
	require.NoError(t, err)
	require.Equal(t, s, again)

	s, err = Transition(s, ActionCancelClose, "s1")
	require.NoError(t, err)
	require.Equal(t, StatusClosing, s.Status())

	_, err = Transition(s, ActionCancelClose, "s1")
	require.True(t, errs.Is(err, errs.InvalidTransition))

	closed, err := Transition(s, ActionClose, "u1")
	require.NoError(t, err)
	require.Equal(t, StatusClosed, closed.Status())
	require.Nil(t, closed.CloseRequesters)
}

func TestTransitionDoesNotShareRequesters(t *testing.T) {
	start := State{CloseRequesters: make([]string, 1, 4)}
	start.CloseRequesters[0] = "u1"

	a, err := Transition(start, ActionRequestClose, "s1")
	require.NoError(t, err)
	b, err := Transition(start, ActionRequestClose, "s2")
	require.NoError(t, err)

	require.Equal(t, []string{"u1", "s1"}, a.CloseRequesters)
	require.Equal(t, []string{"u1", "s2"}, b.CloseRequesters)
	require.Equal(t, []string{"u1"}, start.CloseRequesters)
}

func TestTransitionCosmeticActions(t *testing.T) {
	start := State{ClaimedBy: "s1"}
	for _, action := range []Action{ActionRename, ActionAddUser, ActionRemoveUser} {
		got, err := Transition(start, action, "s2")
		require.NoError(t, err)
		require.Equal(t, start, got)
	}
}

func TestAuthorize(t *testing.T) {
	cfg := &entities.GuildConfig{GuildID: "g1", SupportRoleID: "support"}
	ticket := &entities.Ticket{CreatorID: "creator"}

	staff := Actor{UserID: "s1", RoleIDs: []string{"other", "support"}}
	admin := Actor{UserID: "a1", Permissions: discordgo.PermissionAdministrator}
	creator := Actor{UserID: "creator"}
	stranger := Actor{UserID: "x"}

	require.NoError(t, Authorize(ActionClaim, staff, cfg, ticket))
	require.NoError(t, Authorize(ActionLock, admin, cfg, ticket))
	require.NoError(t, Authorize(ActionRequestClose, creator, cfg, ticket))
	require.NoError(t, Authorize(ActionClose, creator, cfg, ticket))

	require.True(t, errs.Is(Authorize(ActionClaim, creator, cfg, ticket), errs.Forbidden))
	require.True(t, errs.Is(Authorize(ActionRequestClose, stranger, cfg, ticket), errs.Forbidden))
}
