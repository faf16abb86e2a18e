package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/helpdesk/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/helpdesk/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const cooldownDalName = "cooldown_dal"

// CooldownDal tracks how long a user must wait before opening another ticket.
type CooldownDal interface {
	// Remaining returns the time left on the user's cooldown, zero if there is none.
	Remaining(ctx context.Context, userID string) (time.Duration, error)

	// Start puts the user on cooldown for the given duration.
	Start(ctx context.Context, userID string, d time.Duration) error
}

type memoryCooldowns struct {
	mut     sync.Mutex
	now     func() time.Time
	expires map[string]time.Time
}

// NewMemoryCooldowns creates a process local cooldown store. Entries are lost on restart.
func NewMemoryCooldowns() CooldownDal {
	return newMemoryCooldowns(time.Now)
}

func newMemoryCooldowns(now func() time.Time) *memoryCooldowns {
	return &memoryCooldowns{
		now:     now,
		expires: make(map[string]time.Time),
	}
}

func (m *memoryCooldowns) Remaining(_ context.Context, userID string) (time.Duration, error) {
	m.mut.Lock()
	defer m.mut.Unlock()

	expiry, ok := m.expires[userID]
	if !ok {
		return 0, nil
	}

	remaining := expiry.Sub(m.now())
	if remaining <= 0 {
		delete(m.expires, userID)
		return 0, nil
	}
	return remaining, nil
}

func (m *memoryCooldowns) Start(_ context.Context, userID string, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	m.mut.Lock()
	defer m.mut.Unlock()

	now := m.now()
	m.expires[userID] = now.Add(d)

	// Drop expired entries so the map does not grow with every user that ever opened a ticket.
	for id, expiry := range m.expires {
		if !expiry.After(now) {
			delete(m.expires, id)
		}
	}
	return nil
}

type redisCooldowns struct {
	l      *slog.Logger
	client redis.UniversalClient
}

// NewRedisCooldowns creates a cooldown store backed by Redis keys with a TTL, shared between bot instances.
func NewRedisCooldowns(logger *slog.Logger, client redis.UniversalClient) CooldownDal {
	return &redisCooldowns{
		l:      logger.With(slog.String(logging.KeyDal, cooldownDalName)),
		client: client,
	}
}

func cooldownKey(userID string) string {
	return "helpdesk:cooldown:" + userID
}

func (r *redisCooldowns) Remaining(ctx context.Context, userID string) (time.Duration, error) {
	t := prometheus.NewTimer(monitoring.RedisLatency.WithLabelValues(cooldownDalName, "pttl"))
	defer t.ObserveDuration()

	ttl, err := r.client.PTTL(ctx, cooldownKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("error getting cooldown: %w", err)
	}

	// Negative values mean the key is missing or has no expiry.
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *redisCooldowns) Start(ctx context.Context, userID string, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := prometheus.NewTimer(monitoring.RedisLatency.WithLabelValues(cooldownDalName, "set"))
	defer t.ObserveDuration()

	if err := r.client.Set(ctx, cooldownKey(userID), time.Now().Add(d).Unix(), d).Err(); err != nil {
		return fmt.Errorf("error setting cooldown: %w", err)
	}
	return nil
}
