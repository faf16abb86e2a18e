package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/helpdesk/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/errs"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/panel"
	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
)

// interactionTimeout bounds the work of a single interaction. Closing a ticket is bounded by its own timeout.
const interactionTimeout = 2 * time.Minute

// handlerFunc handles one kind of interaction.
type handlerFunc func(c *interaction) error

// InteractionRouter dispatches interactions to their handlers.
type InteractionRouter struct {
	// commands are keyed by slash command name.
	commands map[string]handlerFunc

	// components are keyed by the exact custom ID.
	components map[string]handlerFunc

	// prefixes are keyed by a custom ID prefix, for components carrying a value in their ID.
	prefixes map[string]handlerFunc
}

// NewInteractionRouter creates the router with every command and component of the bot.
func NewInteractionRouter() *InteractionRouter {
	return &InteractionRouter{
		commands: map[string]handlerFunc{
			setupCmdName:  setupHandler,
			topicCmdName:  topicHandler,
			panelCmdName:  panelHandler,
			ticketCmdName: ticketCommandHandler,
		},
		components: map[string]handlerFunc{
			panel.SelectMenuID:           openFromMenuHandler,
			tickets.ClaimButtonID:        claimButtonHandler,
			tickets.UnclaimButtonID:      unclaimButtonHandler,
			tickets.LockButtonID:         lockButtonHandler,
			tickets.UnlockButtonID:       unlockButtonHandler,
			tickets.CloseButtonID:        requestCloseHandler,
			tickets.CloseConfirmButtonID: confirmCloseHandler,
			tickets.CloseCancelButtonID:  cancelCloseHandler,
		},
		prefixes: map[string]handlerFunc{
			panel.OpenButtonPrefix: openFromButtonHandler,
		},
	}
}

// Commands are the slash commands the router handles.
func (rt *InteractionRouter) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{setupCmd, topicCmd, panelCmd, ticketCmd}
}

// resolve finds the handler of an interaction and the route name it is measured under.
func (rt *InteractionRouter) resolve(i *discordgo.InteractionCreate) (string, handlerFunc, bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		h, ok := rt.commands[data.Name]
		if !ok {
			return data.Name, nil, false
		}
		if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
			return data.Name + "/" + data.Options[0].Name, h, true
		}
		return data.Name, h, true
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if h, ok := rt.components[customID]; ok {
			return customID, h, true
		}
		for prefix, h := range rt.prefixes {
			if strings.HasPrefix(customID, prefix) {
				return prefix, h, true
			}
		}
		return customID, nil, false
	default:
		return "", nil, false
	}
}

// Handler returns the discord event handler for interactions.
func (rt *InteractionRouter) Handler(a IApp) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		route, h, ok := rt.resolve(i)
		if !ok {
			if route != "" {
				a.Log().Warn("No handler found for interaction", slog.String("route", route))
			}
			return
		}

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		c := newInteraction(ctx, a, i)
		c.l.Debug("Handling interaction", slog.String("route", route))

		outcome := "ok"
		defer func() {
			if rec := recover(); rec != nil {
				outcome = "panic"
				c.l.Error("Panic in interaction handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				c.fail(fmt.Errorf("panic: %v", rec))
			}
			monitoring.TotalInteractions.WithLabelValues(route, outcome).Inc()
			monitoring.InteractionDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}()

		if i.Member == nil {
			if err := c.replyEphemeral("This bot can only be used inside a server."); err != nil {
				c.l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		err := h(c)
		if err == nil {
			return
		}

		if e, ok := errs.As(err); ok && e.Kind != errs.ExternalCallFailed {
			outcome = "rejected"
			c.l.Info("Interaction rejected",
				slog.String("route", route),
				slog.String("kind", e.Kind.String()),
				slog.String(logging.KeyError, err.Error()),
			)
		} else {
			outcome = "error"
			c.l.Error("Error handling interaction",
				slog.String("route", route),
				slog.String(logging.KeyError, err.Error()),
			)
		}
		c.fail(err)
	}
}
