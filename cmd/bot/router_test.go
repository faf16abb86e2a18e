package main

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/pkg/panel"
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"github.com/stretchr/testify/require"
)

func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: options},
	}}
}

func componentInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionMessageComponent,
		Data: discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

func TestInteractionRouterResolve(t *testing.T) {
	rt := NewInteractionRouter()

	tests := []struct {
		name      string
		i         *discordgo.InteractionCreate
		wantRoute string
		wantFound bool
	}{
		{
			name: "sub command",
			i: commandInteraction(ticketCmdName, &discordgo.ApplicationCommandInteractionDataOption{
				Name: ticketClaimCmdName,
				Type: discordgo.ApplicationCommandOptionSubCommand,
			}),
			wantRoute: "ticket/claim",
			wantFound: true,
		},
		{
			name:      "unknown command",
			i:         commandInteraction("weather"),
			wantRoute: "weather",
		},
		{
			name:      "exact component",
			i:         componentInteraction(tickets.CloseConfirmButtonID),
			wantRoute: tickets.CloseConfirmButtonID,
			wantFound: true,
		},
		{
			name:      "select menu is not taken for a topic button",
			i:         componentInteraction(panel.SelectMenuID),
			wantRoute: panel.SelectMenuID,
			wantFound: true,
		},
		{
			name:      "topic button by prefix",
			i:         componentInteraction(panel.OpenButtonPrefix + "billing"),
			wantRoute: panel.OpenButtonPrefix,
			wantFound: true,
		},
		{
			name:      "unknown component",
			i:         componentInteraction("someone_elses_button"),
			wantRoute: "someone_elses_button",
		},
		{
			name: "ping",
			i:    &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, h, ok := rt.resolve(tt.i)
			require.Equal(t, tt.wantRoute, route)
			require.Equal(t, tt.wantFound, ok)
			require.Equal(t, tt.wantFound, h != nil)
		})
	}
}

func TestCommandsHaveHandlers(t *testing.T) {
	rt := NewInteractionRouter()
	for _, cmd := range rt.Commands() {
		_, ok := rt.commands[cmd.Name]
		require.True(t, ok, cmd.Name)
	}
}

func TestSubcommandOptions(t *testing.T) {
	i := commandInteraction(ticketCmdName, &discordgo.ApplicationCommandInteractionDataOption{
		Name: ticketClaimCmdName,
		Type: discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: forceOptionName, Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
			{Name: userOptionName, Type: discordgo.ApplicationCommandOptionUser, Value: "123"},
		},
	})

	sub, opts, err := subcommand(i)
	require.NoError(t, err)
	require.Equal(t, ticketClaimCmdName, sub)
	require.True(t, opts.boolValue(forceOptionName))
	require.Equal(t, "123", opts.id(userOptionName))
	require.Equal(t, "", opts.id(nameOptionName))
	require.Equal(t, "", opts.stringValue(nameOptionName))

	_, _, err = subcommand(commandInteraction(ticketCmdName))
	require.Error(t, err)
}
