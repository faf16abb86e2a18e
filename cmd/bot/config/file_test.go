package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helpdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileApply(t *testing.T) {
	path := writeFile(t, `
ticket_cooldown: 10m
close_delay: 0s
close_timeout: 1h
history_scan_window: 75
transcript_requests_per_second: 4.5
`)

	f, err := LoadFile(path)
	require.NoError(t, err)

	settings := tickets.DefaultSettings()
	rps := 2.0
	require.NoError(t, f.Apply(&settings, &rps))

	require.Equal(t, 10*time.Minute, settings.Cooldown)
	require.Equal(t, time.Duration(0), settings.CloseDelay)
	require.Equal(t, time.Hour, settings.CloseTimeout)
	require.Equal(t, 75, settings.HistoryScanWindow)
	require.Equal(t, 4.5, rps)
}

func TestApplyKeepsDefaults(t *testing.T) {
	f, err := LoadFile(writeFile(t, "close_delay: 10s\n"))
	require.NoError(t, err)

	settings := tickets.DefaultSettings()
	rps := 2.0
	require.NoError(t, f.Apply(&settings, &rps))

	require.Equal(t, tickets.DefaultCooldown, settings.Cooldown)
	require.Equal(t, 10*time.Second, settings.CloseDelay)
	require.Equal(t, tickets.DefaultCloseTimeout, settings.CloseTimeout)
	require.Equal(t, tickets.DefaultHistoryScanWindow, settings.HistoryScanWindow)
	require.Equal(t, 2.0, rps)
}

func TestApplyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{name: "bad duration", file: File{TicketCooldown: "soon"}},
		{name: "negative delay", file: File{CloseDelay: "-1s"}},
		{name: "bad close timeout", file: File{CloseTimeout: "later"}},
		{name: "window too large", file: File{HistoryScanWindow: 500}},
		{name: "negative rate", file: File{TranscriptRequestsPerSecond: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := tickets.DefaultSettings()
			rps := 2.0
			require.Error(t, tt.file.Apply(&settings, &rps))
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "ticket_cooldown: [not, a, string"))
	require.Error(t, err)
}
