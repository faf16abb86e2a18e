package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jacobbrewer1/helpdesk/pkg/entities"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type fakeGuildDal struct {
	guilds map[string]*entities.GuildConfig
	err    error
}

func (f *fakeGuildDal) GetGuild(_ context.Context, guildID string) (*entities.GuildConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.guilds[guildID]
	if !ok {
		g = &entities.GuildConfig{GuildID: guildID, Topics: []entities.Topic{}}
		f.guilds[guildID] = g
	}
	return g, nil
}

func (f *fakeGuildDal) ReplaceGuild(_ context.Context, guildID string, guild *entities.GuildConfig) error {
	f.guilds[guildID] = guild
	return f.err
}

func (f *fakeGuildDal) PatchGuild(context.Context, string, entities.GuildPatch) error {
	return f.err
}

func TestGuildConfigHandler(t *testing.T) {
	cfg := &entities.GuildConfig{
		GuildID:       "g1",
		CategoryID:    "cat",
		SupportRoleID: "role",
		Topics:        []entities.Topic{{Label: "Billing", Value: "billing"}},
	}
	joined := func(guildID string) bool { return guildID == "g1" || guildID == "g2" }

	tests := []struct {
		name    string
		guildID string
		dal     *fakeGuildDal
		status  int
		want    *entities.GuildConfig
	}{
		{
			name:    "joined guild",
			guildID: "g1",
			dal:     &fakeGuildDal{guilds: map[string]*entities.GuildConfig{"g1": cfg}},
			status:  http.StatusOK,
			want:    cfg,
		},
		{
			name:    "guild not joined",
			guildID: "g9",
			dal:     &fakeGuildDal{guilds: map[string]*entities.GuildConfig{"g9": cfg}},
			status:  http.StatusNotFound,
		},
		{
			name:    "no record yet",
			guildID: "g2",
			dal:     &fakeGuildDal{guilds: map[string]*entities.GuildConfig{}},
			status:  http.StatusOK,
			want:    &entities.GuildConfig{GuildID: "g2", Topics: []entities.Topic{}},
		},
		{
			name:    "store failure",
			guildID: "g1",
			dal:     &fakeGuildDal{err: errors.New("connection reset")},
			status:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/guilds/"+tt.guildID+"/config", nil)
			r = mux.SetURLVars(r, map[string]string{guildIDVar: tt.guildID})

			guildConfigHandler(slog.Default(), tt.dal, joined)(w, r)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.status != http.StatusOK {
				require.NotContains(t, w.Body.String(), "support_role_id")
				return
			}

			got := new(entities.GuildConfig)
			require.NoError(t, json.NewDecoder(w.Body).Decode(got))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		status int
	}{
		{
			name:   "valid token",
			token:  "secret",
			header: "Bearer secret",
			status: http.StatusOK,
		},
		{
			name:   "missing header",
			token:  "secret",
			status: http.StatusUnauthorized,
		},
		{
			name:   "wrong token",
			token:  "secret",
			header: "Bearer guess",
			status: http.StatusUnauthorized,
		},
		{
			name:   "wrong scheme",
			token:  "secret",
			header: "Basic secret",
			status: http.StatusUnauthorized,
		},
		{
			name:   "no token configured",
			header: "Bearer ",
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/guilds/g1/config", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			requireToken(slog.Default(), tt.token, next)(w, r)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.status == http.StatusOK, called)
			if tt.status == http.StatusUnauthorized {
				require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
