package messages

import (
	"fmt"
	"math"

	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

const (
	// ErrUserErrorProcessing is shown when something unexpected went wrong.
	ErrUserErrorProcessing = "There was an error processing your request. Please try again later."

	// ErrAdminRequired is shown when a configuration command is used by a non-administrator.
	ErrAdminRequired = "You must be an administrator to use this command."
)

// ForError renders an error as the single private message shown to the requester.
func ForError(err error) string {
	e, ok := errs.As(err)
	if !ok {
		return ErrUserErrorProcessing
	}

	switch e.Kind {
	case errs.NotConfigured:
		return "Tickets are not set up on this server yet. An administrator needs to run `/setup category`, `/setup support-role` and `/topic add` first."
	case errs.UnknownTopic:
		return "That topic no longer exists. Please pick another one from the panel."
	case errs.DuplicateTopicKey:
		return fmt.Sprintf("A topic with that value already exists. (%s)", e.Message)
	case errs.TopicNotFound:
		return fmt.Sprintf("There is no such topic. Use `/topic list` to see the configured topics. (%s)", e.Message)
	case errs.TopicLimitExceeded:
		return "This server already has the maximum number of topics. Remove one with `/topic remove` first."
	case errs.InvalidTopicKey:
		return "A topic value may only contain letters, digits and underscores."
	case errs.TooManyTopicsForButtons:
		return "There are too many topics to show as buttons. Use the `menu` or `auto` style instead."
	case errs.DuplicateTicket:
		return fmt.Sprintf("You already have an open ticket: <#%s>", e.ChannelID)
	case errs.CooldownActive:
		return fmt.Sprintf("You are opening tickets too quickly. Please wait %d seconds and try again.", int(math.Ceil(e.Remaining.Seconds())))
	case errs.AlreadyClaimed:
		return "You have already claimed this ticket."
	case errs.AlreadyClaimedByOther:
		return fmt.Sprintf("This ticket is already claimed by <@%s>. Use `/ticket claim force:true` to take it over.", e.UserID)
	case errs.InvalidTransition:
		return fmt.Sprintf("That cannot be done right now: %s.", e.Message)
	case errs.ControlPanelNotFound:
		return "Done, but the ticket's control panel message could not be found so its status display was not updated."
	case errs.NotATicketChannel:
		return "This command can only be used inside an open ticket channel."
	case errs.InvalidName:
		return "That name is not valid. Channel names need 2 to 100 letters, digits or hyphens."
	case errs.Forbidden:
		return fmt.Sprintf("You are not allowed to do that. %s", e.Message)
	case errs.MissingExternalPermission:
		return fmt.Sprintf("I am missing the **%s** permission for <#%s>. Please grant it and try again.", e.Capability, e.ChannelID)
	case errs.ExternalCallFailed:
		return fmt.Sprintf("Discord did not accept the request (%s). Please try again later.", e.Message)
	default:
		return ErrUserErrorProcessing
	}
}
