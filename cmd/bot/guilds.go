package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
)

// guildJoinedHandler registers the slash commands of the bot in every guild it becomes available in.
func guildJoinedHandler(a IApp, commands []*discordgo.ApplicationCommand) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		l := a.Log().With(slog.String(logging.KeyGuild, g.ID))
		l.Info("Joined guild", slog.String("name", g.Name))

		monitoring.TotalDiscordGuilds.Inc()

		if _, err := s.ApplicationCommandBulkOverwrite(config.ApplicationId, g.ID, commands); err != nil {
			l.Error("Error registering slash commands", slog.String(logging.KeyError, err.Error()))
		}
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		// An unavailable guild is an outage, not a removal.
		if g.Unavailable {
			return
		}

		a.Log().Info("Left guild", slog.String(logging.KeyGuild, g.ID))
		monitoring.TotalDiscordGuilds.Dec()
	}
}
