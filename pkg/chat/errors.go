package chat

import (
	"errors"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

// IsMissingPermissions reports whether the error is Discord refusing the call for lack of a permission or access.
func IsMissingPermissions(err error) bool {
	restErr := new(discordgo.RESTError)
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == discordgo.ErrCodeMissingPermissions ||
		restErr.Message.Code == discordgo.ErrCodeMissingAccess
}

// IsUnknownResource reports whether the error is Discord not finding the channel or message.
func IsUnknownResource(err error) bool {
	restErr := new(discordgo.RESTError)
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == discordgo.ErrCodeUnknownChannel ||
		restErr.Message.Code == discordgo.ErrCodeUnknownMessage
}

// Classify turns a failed Discord call into a classified error. Missing permissions name the capability and the
// target so an operator can fix them, everything else is an ExternalCallFailed.
func Classify(err error, capability, target, action string) error {
	if err == nil {
		return nil
	}

	if IsMissingPermissions(err) {
		e := errs.Wrap(errs.MissingExternalPermission, err, "%s on %s", capability, target)
		e.Capability = capability
		e.ChannelID = target
		return e
	}
	return errs.Wrap(errs.ExternalCallFailed, err, action)
}
