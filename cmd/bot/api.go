package main

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/Jacobbrewer1/helpdesk/pkg/request"
	"github.com/gorilla/mux"
)

const guildIDVar = "guildID"

// bearerPrefix starts the Authorization header of an authenticated API request.
const bearerPrefix = "Bearer "

// requireToken rejects requests that do not carry the API token as a bearer token.
func requireToken(l *slog.Logger, token string, next Controller) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
		if token == "" || !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			if err := request.Encode(w, http.StatusUnauthorized, request.NewMessage(request.ErrUnauthorized.Error())); err != nil {
				l.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}
		next(w, r)
	}
}

// guildConfigHandler serves the configuration of a guild the bot is a member of.
func guildConfigHandler(l *slog.Logger, guilds dataaccess.GuildDal, joined func(guildID string) bool) Controller {
	return func(w http.ResponseWriter, r *http.Request) {
		guildID := mux.Vars(r)[guildIDVar]
		l := l.With(slog.String(logging.KeyGuild, guildID))

		if guildID == "" || !joined(guildID) {
			if err := request.Encode(w, http.StatusNotFound, request.NewMessage("Guild %s not found", guildID)); err != nil {
				l.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		cfg, err := guilds.GetGuild(r.Context(), guildID)
		if err != nil {
			l.Error("Error getting guild config", slog.String(logging.KeyError, err.Error()))
			if err := request.Encode(w, http.StatusInternalServerError, request.NewMessageError("Error getting guild config", request.ErrInternalServer)); err != nil {
				l.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
			}
			return
		}

		if err := request.Encode(w, http.StatusOK, cfg); err != nil {
			l.Error("Error encoding response", slog.String(logging.KeyError, err.Error()))
		}
	}
}
