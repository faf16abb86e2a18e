package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Jacobbrewer1/helpdesk/pkg/tickets"
	"gopkg.in/yaml.v3"
)

// File is the optional YAML settings file. Every key may be left out to keep the default.
type File struct {
	// TicketCooldown is a duration such as "5m". "0s" disables the cooldown.
	TicketCooldown string `yaml:"ticket_cooldown"`

	// CloseDelay is a duration such as "5s".
	CloseDelay string `yaml:"close_delay"`

	// CloseTimeout bounds closing a ticket, transcript included. Zero keeps the default.
	CloseTimeout string `yaml:"close_timeout"`

	// HistoryScanWindow is how many recent messages are searched for a ticket's control panel.
	HistoryScanWindow int `yaml:"history_scan_window"`

	// TranscriptRequestsPerSecond bounds history requests while generating a transcript.
	TranscriptRequestsPerSecond float64 `yaml:"transcript_requests_per_second"`
}

// LoadFile reads a settings file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	f := new(File)
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return f, nil
}

// Apply overrides the settings with the values present in the file.
func (f *File) Apply(settings *tickets.Settings, requestsPerSecond *float64) error {
	if f.TicketCooldown != "" {
		d, err := parseDuration("ticket_cooldown", f.TicketCooldown)
		if err != nil {
			return err
		}
		settings.Cooldown = d
	}

	if f.CloseDelay != "" {
		d, err := parseDuration("close_delay", f.CloseDelay)
		if err != nil {
			return err
		}
		settings.CloseDelay = d
	}

	if f.CloseTimeout != "" {
		d, err := parseDuration("close_timeout", f.CloseTimeout)
		if err != nil {
			return err
		}
		if d > 0 {
			settings.CloseTimeout = d
		}
	}

	if f.HistoryScanWindow != 0 {
		if f.HistoryScanWindow < 1 || f.HistoryScanWindow > 100 {
			return fmt.Errorf("history_scan_window must be between 1 and 100, got %d", f.HistoryScanWindow)
		}
		settings.HistoryScanWindow = f.HistoryScanWindow
	}

	if f.TranscriptRequestsPerSecond < 0 {
		return errors.New("transcript_requests_per_second cannot be negative")
	} else if f.TranscriptRequestsPerSecond > 0 {
		*requestsPerSecond = f.TranscriptRequestsPerSecond
	}
	return nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", key)
	}
	return d, nil
}
