package tickets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

const (
	minChannelNameLength = 2
	maxChannelNameLength = 100
)

var numericSuffix = regexp.MustCompile(`-(\d+)$`)

// SanitizeChannelName lower-cases the name and collapses every run of characters other than letters and digits
// into a single hyphen, trimming hyphens from both ends.
func SanitizeChannelName(raw string) (string, error) {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	name := b.String()
	if len(name) > maxChannelNameLength {
		name = strings.TrimRight(name[:maxChannelNameLength], "-")
	}

	if len(name) < minChannelNameLength {
		return "", errs.New(errs.InvalidName, "%q does not make a channel name of %d-%d characters", raw, minChannelNameLength, maxChannelNameLength)
	}
	return name, nil
}

// NextTicketNumber returns one more than the largest numeric suffix of the text channels under the category,
// or 1 if none have one.
func NextTicketNumber(channels []*discordgo.Channel, categoryID string) int {
	highest := 0
	for _, ch := range channels {
		if ch == nil || ch.ParentID != categoryID || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if n, ok := ticketNumber(ch.Name); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func ticketNumber(channelName string) (int, bool) {
	match := numericSuffix.FindStringSubmatch(channelName)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ChannelName is the name of the channel of the numbered ticket.
func ChannelName(number int) string {
	return fmt.Sprintf("ticket-%d", number)
}
