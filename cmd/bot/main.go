package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Jacobbrewer1/helpdesk/cmd/bot/config"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
)

// startupTimeout bounds connecting to the databases.
const startupTimeout = 30 * time.Second

func main() {
	a, err := InitializeApp()
	if err != nil {
		log.Fatalln(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	err = config.Parse(ctx, a.Log())
	cancel()
	if err != nil {
		a.Error("Error loading configuration", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}

	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
