package topics

import (
	"strings"

	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
)

// MaxTopics is the most topics a guild can have. It matches the option limit of a select menu.
const MaxTopics = 25

// SanitizeKey lower-cases the key and strips everything that is not a letter, digit or underscore.
func SanitizeKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Add appends the topic to the configuration. The topic value is sanitized first.
func Add(cfg *entities.GuildConfig, topic entities.Topic) (entities.Topic, error) {
	raw := topic.Value
	topic.Value = SanitizeKey(raw)
	if topic.Value == "" {
		return entities.Topic{}, errs.New(errs.InvalidTopicKey, "%q has no letters, digits or underscores", raw)
	}

	topic.Label = strings.TrimSpace(topic.Label)
	if topic.Label == "" {
		topic.Label = topic.Value
	}

	if _, ok := cfg.Topic(topic.Value); ok {
		return entities.Topic{}, errs.New(errs.DuplicateTopicKey, "topic %q already exists", topic.Value)
	}

	if len(cfg.Topics) >= MaxTopics {
		return entities.Topic{}, errs.New(errs.TopicLimitExceeded, "a guild can have at most %d topics", MaxTopics)
	}

	cfg.Topics = append(cfg.Topics, topic)
	return topic, nil
}

// Remove removes the topic with the given value from the configuration.
func Remove(cfg *entities.GuildConfig, value string) (entities.Topic, error) {
	key := SanitizeKey(value)
	for idx, t := range cfg.Topics {
		if t.Value != key {
			continue
		}

		// Copy so the caller's backing array is not shifted under them.
		remaining := make([]entities.Topic, 0, len(cfg.Topics)-1)
		remaining = append(remaining, cfg.Topics[:idx]...)
		remaining = append(remaining, cfg.Topics[idx+1:]...)
		cfg.Topics = remaining
		return t, nil
	}
	return entities.Topic{}, errs.New(errs.TopicNotFound, "topic %q does not exist", value)
}

// Find returns the topic with the given value. The value is sanitized first.
func Find(cfg *entities.GuildConfig, value string) (entities.Topic, error) {
	t, ok := cfg.Topic(SanitizeKey(value))
	if !ok {
		return entities.Topic{}, errs.New(errs.UnknownTopic, "topic %q does not exist", value)
	}
	return t, nil
}
