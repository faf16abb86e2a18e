package tickets

import (
	"fmt"
	"regexp"

	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
)

var (
	creatorPattern = regexp.MustCompile(`creator=([A-Za-z0-9]+)`)
	topicPattern   = regexp.MustCompile(`topic=([a-z0-9_]+)`)
)

// TopicText is the channel topic of a ticket channel. The creator and topic value are kept in it so a ticket can
// be recognised even without its record.
func TopicText(t *entities.Ticket) string {
	label := t.TopicLabel
	if label == "" {
		label = t.TopicValue
	}
	return fmt.Sprintf("Support ticket for %s | creator=%s | topic=%s", label, t.CreatorID, t.TopicValue)
}

// ChannelMetadata is what can be recovered from a ticket channel's topic.
type ChannelMetadata struct {
	CreatorID  string
	TopicValue string
}

// ParseTopicText reads the metadata back out of a channel topic. It reports false if the topic does not name a
// creator.
func ParseTopicText(text string) (ChannelMetadata, bool) {
	creator := creatorPattern.FindStringSubmatch(text)
	if creator == nil {
		return ChannelMetadata{}, false
	}

	md := ChannelMetadata{CreatorID: creator[1]}
	if topic := topicPattern.FindStringSubmatch(text); topic != nil {
		md.TopicValue = topic[1]
	}
	return md, true
}
