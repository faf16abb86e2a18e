package monitoring

import (
	"fmt"

	"github.com/Jacobbrewer1/helpdesk/cmd/bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDiscordEvents is the total number of events.
	TotalDiscordEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_discord_events", config.AppName),
			Help: "Total number of events",
		},
		[]string{"event"},
	)

	// HttpTotalRequests is the total number of http requests.
	HttpTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_total_requests", config.AppName),
			Help: "Total number of http requests",
		},
		[]string{"path", "method", "status_code"},
	)

	// HttpRequestDuration is the duration of the http request.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_http_request_duration", config.AppName),
			Help: "Duration of the http request",
		},
		[]string{"path", "method", "status_code"},
	)

	TotalDiscordGuilds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_total_discord_guilds", config.AppName),
			Help: "Total number of discord guilds",
		},
	)

	// TotalInteractions is the total number of handled interactions by route and outcome.
	TotalInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_total_interactions", config.AppName),
			Help: "Total number of handled interactions",
		},
		[]string{"route", "outcome"},
	)

	// InteractionDuration is the duration of handling an interaction.
	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: fmt.Sprintf("%s_interaction_duration", config.AppName),
			Help: "Duration of handling an interaction",
		},
		[]string{"route"},
	)

	// TicketsOpened is the total number of tickets opened.
	TicketsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_tickets_opened", config.AppName),
			Help: "Total number of tickets opened",
		},
		[]string{"topic"},
	)

	// TicketsClosed is the total number of tickets closed.
	TicketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_tickets_closed", config.AppName),
			Help: "Total number of tickets closed",
		},
	)

	// TicketActions is the total number of ticket state changes by action.
	TicketActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_ticket_actions", config.AppName),
			Help: "Total number of ticket state changes",
		},
		[]string{"action"},
	)
)
