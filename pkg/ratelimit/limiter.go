// Package ratelimit gates request admission with two fixed-window
// counters, one per caller IP and one per session. The counters live
// in a CounterStore whose increment must be atomic, so concurrent
// requests sharing a key never under- or over-count.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore is the shared counter collaborator. Get returns the
// current count and the remaining window TTL (zero count and TTL for
// an absent or expired key). IncrementWithTTL must be atomic and must
// start a fresh window when the key is new.
type CounterStore interface {
	Get(ctx context.Context, key string) (count int64, ttl time.Duration, err error)
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

const (
	ipKeyPrefix      = "rate_limit_ip_"
	sessionKeyPrefix = "rate_limit_session_"
)

const (
	DefaultWindow       = 60 * time.Second
	DefaultIPLimit      = 60
	DefaultSessionLimit = 20
)

type Config struct {
	Window       time.Duration
	IPLimit      int64
	SessionLimit int64
}

// Decision is an admission outcome. A rejection is a decision, not an
// error; RetryAfter hints when the caller may try again.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter struct {
	store  CounterStore
	config Config
}

func NewLimiter(store CounterStore, config Config) *Limiter {
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}
	if config.IPLimit <= 0 {
		config.IPLimit = DefaultIPLimit
	}
	if config.SessionLimit <= 0 {
		config.SessionLimit = DefaultSessionLimit
	}
	return &Limiter{store: store, config: config}
}

// Admit checks both counters and, only if both are under their limits,
// increments both and admits. A rejected request increments nothing.
// On a store error Admit fails open: the request is admitted and the
// error is returned for the caller to log.
func (l *Limiter) Admit(ctx context.Context, ip, sessionID string) (Decision, error) {
	checks := []struct {
		key   string
		limit int64
	}{
		{ipKeyPrefix + ip, l.config.IPLimit},
		{sessionKeyPrefix + sessionID, l.config.SessionLimit},
	}

	for _, c := range checks {
		count, ttl, err := l.store.Get(ctx, c.key)
		if err != nil {
			return Decision{Allowed: true}, err
		}
		if count >= c.limit {
			if ttl <= 0 {
				ttl = l.config.Window
			}
			return Decision{Allowed: false, RetryAfter: ttl}, nil
		}
	}

	for _, c := range checks {
		if _, err := l.store.IncrementWithTTL(ctx, c.key, l.config.Window); err != nil {
			return Decision{Allowed: true}, err
		}
	}

	return Decision{Allowed: true}, nil
}
