package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/chat"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/request"
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"github.com/Jacobbrewer1/helpdesk/pkg/transcript"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"

	// PathGuildConfig is the path for the read only view of a guild configuration.
	PathGuildConfig = "/api/guilds/{" + guildIDVar + "}/config"

	// shutdownTimeout bounds the graceful shutdown of the monitoring server.
	shutdownTimeout = 10 * time.Second
)

// IApp is the interface for the application.
type IApp interface {
	// Session returns the discord session.
	Session() *discordgo.Session

	// Log returns the application logger.
	Log() *slog.Logger

	// Chat returns the client for the chat platform.
	Chat() chat.Client

	// GuildDal returns the store of guild configurations.
	GuildDal() dataaccess.GuildDal

	// Tickets returns the ticket manager.
	Tickets() *tickets.Manager
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the monitoring server.
	r *mux.Router

	// ir routes discord interactions.
	ir *InteractionRouter

	// svr is the monitoring server.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any

	chat    chat.Client
	guilds  dataaccess.GuildDal
	tickets *tickets.Manager
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router, ir *InteractionRouter) *App {
	return &App{
		Logger: l,
		r:      r,
		ir:     ir,
	}
}

func (a *App) Run() error {
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	a.buildServices()

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info("Logged in", slog.String("username", r.User.Username), slog.Int("guilds", len(r.Guilds)))
	})
	a.RegisterDiscordHandlers()

	go a.eventListener()

	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sig := <-c
	a.Info("Received shutdown signal", slog.String("signal", sig.String()))
	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

// buildServices creates the stores and the ticket manager on top of the session.
func (a *App) buildServices() {
	var cooldowns dataaccess.CooldownDal
	if config.RedisClient != nil {
		cooldowns = dataaccess.NewRedisCooldowns(a.Logger, config.RedisClient)
	} else {
		cooldowns = dataaccess.NewMemoryCooldowns()
	}

	a.chat = chat.NewSessionClient(a.s)
	a.guilds = dataaccess.NewGuildDal(a.Logger)
	a.tickets = tickets.NewManager(
		a.Logger,
		a.chat,
		a.guilds,
		dataaccess.NewTicketDal(a.Logger),
		cooldowns,
		transcript.NewHTMLGenerator(a.Logger, a.chat, config.TranscriptRequestsPerSecond),
		config.TicketSettings,
	)
}

func (a *App) ShutdownHook() error {
	monitoring.TotalDiscordGuilds.Set(0)

	var errs []error
	if err := a.unregisterSlashCommands(); err != nil {
		errs = append(errs, fmt.Errorf("error unregistering slash commands: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.svr.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
	}

	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}

	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing redis client: %w", err))
		}
	}

	if err := dataaccess.MongoDB.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error disconnecting from mongo: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) RegisterBot() error {
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds)

	if a.eventNotifier == nil {
		// Buffered so the session never blocks on the listener.
		a.eventNotifier = make(chan any, 100)
	}

	dg.SetEventNotifier(a.eventNotifier)

	a.s = dg
	return nil
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), a)).Methods(http.MethodGet)
	if config.ApiToken != "" {
		handler := requireToken(a.Logger, config.ApiToken, guildConfigHandler(a.Logger, a.guilds, a.isJoined))
		a.r.HandleFunc(PathGuildConfig, middlewareHttp(handler, a)).Methods(http.MethodGet)
	} else {
		a.Info("No API token provided, the guild config API is disabled", slog.String("key", config.EnvApiToken))
	}

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + config.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// isJoined reports whether the bot is a member of the guild.
func (a *App) isJoined(guildID string) bool {
	_, err := a.s.State.Guild(guildID)
	return err == nil
}

func (a *App) GetJoinedGuilds() ([]*discordgo.UserGuild, error) {
	guilds, err := a.s.UserGuilds(0, "", "")
	if err != nil {
		return nil, fmt.Errorf("error getting guilds: %w", err)
	}
	return guilds, nil
}

func (a *App) RegisterDiscordHandlers() {
	a.s.AddHandler(guildJoinedHandler(a, a.ir.Commands()))
	a.s.AddHandler(guildLeaveHandler(a))
	a.s.AddHandler(a.ir.Handler(a))
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				monitoring.TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				monitoring.TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			monitoring.TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

// unregisterSlashCommands removes the commands of the bot from every guild it is in.
func (a *App) unregisterSlashCommands() error {
	guilds, err := a.GetJoinedGuilds()
	if err != nil {
		return err
	}

	var errs []error
	for _, g := range guilds {
		if _, err := a.s.ApplicationCommandBulkOverwrite(config.ApplicationId, g.ID, []*discordgo.ApplicationCommand{}); err != nil {
			errs = append(errs, fmt.Errorf("error removing commands for guild %s: %w", g.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Chat() chat.Client {
	return a.chat
}

func (a *App) GuildDal() dataaccess.GuildDal {
	return a.guilds
}

func (a *App) Tickets() *tickets.Manager {
	return a.tickets
}
