package tickets

import (
	"fmt"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
)

const (
	// ClaimButtonID is the custom ID of the claim button.
	ClaimButtonID = "ticket_claim"

	// UnclaimButtonID is the custom ID of the unclaim button.
	UnclaimButtonID = "ticket_unclaim"

	// LockButtonID is the custom ID of the lock button.
	LockButtonID = "ticket_lock"

	// UnlockButtonID is the custom ID of the unlock button.
	UnlockButtonID = "ticket_unlock"

	// CloseButtonID is the custom ID of the close button.
	CloseButtonID = "ticket_close"

	// CloseConfirmButtonID is the custom ID of the button that confirms closing.
	CloseConfirmButtonID = "ticket_close_confirm"

	// CloseCancelButtonID is the custom ID of the button that cancels closing.
	CloseCancelButtonID = "ticket_close_cancel"
)

const (
	// ControlPanelMarker is the footer text that identifies the bot's control panel message in a ticket.
	ControlPanelMarker = "helpdesk ticket controls"

	claimEmoji  = "\U0001F3AB"
	lockEmoji   = "\U0001F512"
	unlockEmoji = "\U0001F513"
	closeEmoji  = "\U0001F510"

	colorOpen       = 0x57F287
	colorInProgress = 0x5865F2
	colorLocked     = 0xFEE75C
	colorClosed     = 0xED4245
)

func statusColor(s Status) int {
	switch s {
	case StatusInProgress:
		return colorInProgress
	case StatusLocked:
		return colorLocked
	case StatusClosing, StatusClosed:
		return colorClosed
	default:
		return colorOpen
	}
}

func claimedByText(t *entities.Ticket) string {
	if t.ClaimedBy == "" {
		return "None"
	}
	return fmt.Sprintf("<@%s>", t.ClaimedBy)
}

// ControlPanelEmbed is the status header of a ticket.
func ControlPanelEmbed(t *entities.Ticket) *discordgo.MessageEmbed {
	status := StateOf(t).DisplayStatus()
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket #%d", t.Number),
		Description: fmt.Sprintf("Welcome <@%s>! Support will be with you shortly.\nTopic: **%s**\nPlease describe your issue in as much detail as you can.",
			t.CreatorID, t.TopicLabel),
		Color: statusColor(status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Claimed by", Value: claimedByText(t), Inline: true},
			{Name: "Status", Value: status.String(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: ControlPanelMarker},
	}
}

// ControlPanelComponents are the buttons under the status header. They offer the opposite of the current claim
// and lock state.
func ControlPanelComponents(t *entities.Ticket) []discordgo.MessageComponent {
	claim := discordgo.Button{
		Label:    claimEmoji + " Claim",
		Style:    discordgo.PrimaryButton,
		CustomID: ClaimButtonID,
	}
	if t.ClaimedBy != "" {
		claim = discordgo.Button{
			Label:    claimEmoji + " Unclaim",
			Style:    discordgo.SecondaryButton,
			CustomID: UnclaimButtonID,
		}
	}

	lock := discordgo.Button{
		Label:    lockEmoji + " Lock",
		Style:    discordgo.SecondaryButton,
		CustomID: LockButtonID,
	}
	if t.Locked {
		lock = discordgo.Button{
			Label:    unlockEmoji + " Unlock",
			Style:    discordgo.SuccessButton,
			CustomID: UnlockButtonID,
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				claim,
				lock,
				discordgo.Button{
					Label:    closeEmoji + " Close",
					Style:    discordgo.DangerButton,
					CustomID: CloseButtonID,
				},
			},
		},
	}
}

// WelcomeMessage is the first message of a ticket channel.
func WelcomeMessage(t *entities.Ticket, supportRoleID string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    fmt.Sprintf("<@%s> <@&%s>", t.CreatorID, supportRoleID),
		Embed:      ControlPanelEmbed(t),
		Components: ControlPanelComponents(t),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{t.CreatorID},
			Roles: []string{supportRoleID},
		},
	}
}

// CloseConfirmComponents are the buttons of the private close confirmation prompt.
func CloseConfirmComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.DangerButton,
					CustomID: CloseConfirmButtonID,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: CloseCancelButtonID,
				},
			},
		},
	}
}

// IsControlPanel reports whether the message is the bot's control panel.
func IsControlPanel(m *discordgo.Message, botUserID string) bool {
	if m == nil || m.Author == nil || m.Author.ID != botUserID {
		return false
	}
	for _, e := range m.Embeds {
		if e != nil && e.Footer != nil && e.Footer.Text == ControlPanelMarker {
			return true
		}
	}
	return false
}

func createdLogEmbed(t *entities.Ticket) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Ticket Opened",
		Color: colorOpen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket", Value: fmt.Sprintf("<#%s> (%s)", t.ChannelID, t.Name()), Inline: true},
			{Name: "Opened by", Value: fmt.Sprintf("<@%s>", t.CreatorID), Inline: true},
			{Name: "Topic", Value: t.TopicLabel, Inline: true},
		},
		Timestamp: t.CreatedAt.Format(time.RFC3339),
	}
}

func closedLogEmbed(t *entities.Ticket, channelName string, messageCount int) *discordgo.MessageEmbed {
	closedAt := time.Now()
	if t.ClosedAt != nil {
		closedAt = *t.ClosedAt
	}
	return &discordgo.MessageEmbed{
		Title: "Ticket Closed",
		Color: colorClosed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Closed by", Value: fmt.Sprintf("<@%s>", t.ClosedBy), Inline: true},
			{Name: "Opened by", Value: fmt.Sprintf("<@%s>", t.CreatorID), Inline: true},
			{Name: "Channel", Value: channelName, Inline: true},
			{Name: "Topic", Value: t.TopicLabel, Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", messageCount), Inline: true},
		},
		Timestamp: closedAt.Format(time.RFC3339),
	}
}
