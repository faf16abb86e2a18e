package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/helpdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess/connection"
	"github.com/alexliesenfeld/health"
)

func (a *App) statusListener(component string) func(ctx context.Context, name string, state health.CheckState) {
	return func(_ context.Context, name string, state health.CheckState) {
		a.Info(component+" health check status changed",
			slog.String("name", name),
			slog.String("state", string(state.Status)),
		)
	}
}

func (a *App) healthCheck() Controller {
	opts := []health.CheckerOption{
		health.WithCacheDuration(1 * time.Second),
		health.WithTimeout(2 * time.Second),

		health.WithCheck(health.Check{
			Name: "MongoDB",
			Check: func(ctx context.Context) error {
				return connection.Ping(ctx, dataaccess.MongoDB)
			},
			Timeout:        2 * time.Second,
			StatusListener: a.statusListener("MongoDB"),
		}),

		// The gateway is only polled periodically to stay inside the rate limits.
		health.WithPeriodicCheck(15*time.Second, 5*time.Second, health.Check{
			Name: "Discord_API",
			Check: func(ctx context.Context) error {
				if _, err := a.Session().GatewayBot(); err != nil {
					return fmt.Errorf("failed to ping Discord API: %w", err)
				}
				return nil
			},
			Timeout:        3 * time.Second,
			StatusListener: a.statusListener("Discord API"),
		}),
	}

	if config.RedisClient != nil {
		opts = append(opts, health.WithCheck(health.Check{
			Name: "Redis",
			Check: func(ctx context.Context) error {
				if err := config.RedisClient.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("failed to ping Redis: %w", err)
				}
				return nil
			},
			Timeout:        2 * time.Second,
			StatusListener: a.statusListener("Redis"),
		}))
	}

	return Controller(health.NewHandler(health.NewChecker(opts...)))
}
