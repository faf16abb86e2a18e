package topics

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already clean", raw: "billing", want: "billing"},
		{name: "upper case", raw: "Billing_Help", want: "billing_help"},
		{name: "spaces and punctuation", raw: "Bug Report #2!", want: "bugreport2"},
		{name: "unicode", raw: "café-menu", want: "cafmenu"},
		{name: "nothing usable", raw: "!!! ---", want: ""},
	}

	valid := regexp.MustCompile(`^[a-z0-9_]*$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeKey(tt.raw)
			require.Equal(t, tt.want, got)
			require.Regexp(t, valid, got)
		})
	}
}

func TestAdd(t *testing.T) {
	cfg := &entities.GuildConfig{GuildID: "1"}

	got, err := Add(cfg, entities.Topic{Label: "Billing", Value: "Billing"})
	require.NoError(t, err)
	require.Equal(t, "billing", got.Value)
	require.Len(t, cfg.Topics, 1)

	_, err = Add(cfg, entities.Topic{Label: "Billing again", Value: "BILLING"})
	require.True(t, errs.Is(err, errs.DuplicateTopicKey))
	require.Len(t, cfg.Topics, 1)

	_, err = Add(cfg, entities.Topic{Label: "Nothing", Value: "???"})
	require.True(t, errs.Is(err, errs.InvalidTopicKey))

	got, err = Add(cfg, entities.Topic{Value: "general"})
	require.NoError(t, err)
	require.Equal(t, "general", got.Label)
}

func TestAddLimit(t *testing.T) {
	cfg := &entities.GuildConfig{GuildID: "1"}
	for i := 0; i < MaxTopics; i++ {
		_, err := Add(cfg, entities.Topic{Label: "t", Value: fmt.Sprintf("topic_%d", i)})
		require.NoError(t, err)
	}

	_, err := Add(cfg, entities.Topic{Label: "one too many", Value: "extra"})
	require.True(t, errs.Is(err, errs.TopicLimitExceeded))
	require.Len(t, cfg.Topics, MaxTopics)
}

func TestRemove(t *testing.T) {
	cfg := &entities.GuildConfig{
		GuildID: "1",
		Topics: []entities.Topic{
			{Label: "A", Value: "a"},
			{Label: "B", Value: "b"},
			{Label: "C", Value: "c"},
		},
	}

	removed, err := Remove(cfg, "b")
	require.NoError(t, err)
	require.Equal(t, "B", removed.Label)
	require.Equal(t, []entities.Topic{{Label: "A", Value: "a"}, {Label: "C", Value: "c"}}, cfg.Topics)

	_, err = Remove(cfg, "b")
	require.True(t, errs.Is(err, errs.TopicNotFound))
	require.Len(t, cfg.Topics, 2)
}

func TestValuesStayUnique(t *testing.T) {
	cfg := &entities.GuildConfig{GuildID: "1"}
	ops := []struct {
		add   bool
		value string
	}{
		{true, "a"}, {true, "A"}, {true, "b"}, {false, "a"}, {true, "a"}, {true, "b_"}, {true, "B"}, {false, "zzz"},
	}

	for _, op := range ops {
		if op.add {
			_, _ = Add(cfg, entities.Topic{Label: op.value, Value: op.value})
		} else {
			_, _ = Remove(cfg, op.value)
		}

		seen := make(map[string]bool)
		for _, topic := range cfg.Topics {
			require.False(t, seen[topic.Value], "duplicate value %q", topic.Value)
			seen[topic.Value] = true
		}
	}
	require.Len(t, cfg.Topics, 3)
}

func TestFind(t *testing.T) {
	cfg := &entities.GuildConfig{Topics: []entities.Topic{{Label: "Billing", Value: "billing"}}}

	got, err := Find(cfg, "Billing")
	require.NoError(t, err)
	require.Equal(t, "Billing", got.Label)

	_, err = Find(cfg, "refunds")
	require.True(t, errs.Is(err, errs.UnknownTopic))
}
