package tickets

import (
	"strings"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/stretchr/testify/require"
)

func TestSanitizeChannelName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		invalid bool
	}{
		{name: "mixed input", raw: "Urgent Issue!! User#1", want: "urgent-issue-user-1"},
		{name: "leading and trailing junk", raw: "  --Billing--  ", want: "billing"},
		{name: "already valid", raw: "ticket-12", want: "ticket-12"},
		{name: "unicode dropped", raw: "Résumé help", want: "r-sum-help"},
		{name: "single character", raw: "a!!", invalid: true},
		{name: "empty", raw: "!!!", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeChannelName(tt.raw)
			if tt.invalid {
				require.True(t, errs.Is(err, errs.InvalidName))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Regexp(t, `^[a-z0-9]+(-[a-z0-9]+)*$`, got)
		})
	}
}

func TestSanitizeChannelNameTruncates(t *testing.T) {
	got, err := SanitizeChannelName(strings.Repeat("ab ", 60))
	require.NoError(t, err)
	require.LessOrEqual(t, len(got), 100)
	require.False(t, strings.HasSuffix(got, "-"))
}

func TestNextTicketNumber(t *testing.T) {
	text := discordgo.ChannelTypeGuildText

	tests := []struct {
		name     string
		channels []*discordgo.Channel
		want     int
	}{
		{
			name: "no channels",
			want: 1,
		},
		{
			name: "nothing parses",
			channels: []*discordgo.Channel{
				{Name: "general", ParentID: "cat", Type: text},
				{Name: "ticket-abc", ParentID: "cat", Type: text},
			},
			want: 1,
		},
		{
			name: "highest sibling wins",
			channels: []*discordgo.Channel{
				{Name: "ticket-3", ParentID: "cat", Type: text},
				{Name: "ticket-7", ParentID: "cat", Type: text},
				{Name: "renamed-issue-5", ParentID: "cat", Type: text},
			},
			want: 8,
		},
		{
			name: "other categories ignored",
			channels: []*discordgo.Channel{
				{Name: "ticket-2", ParentID: "cat", Type: text},
				{Name: "ticket-40", ParentID: "elsewhere", Type: text},
				{Name: "ticket-50", ParentID: "cat", Type: discordgo.ChannelTypeGuildVoice},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NextTicketNumber(tt.channels, "cat"))
		})
	}
}
