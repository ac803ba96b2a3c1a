package feeder

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Guard serializes access to a shared feeder client. The feeder speaks a
// single in-flight-request protocol, so overlapping connect/disconnect
// sequences from concurrent callers would race on the session; the guard
// makes each connect → operate → disconnect sequence atomic with respect
// to other callers.
type Guard struct {
	mu     sync.Mutex
	client Client
}

// NewGuard wraps a client in a Guard.
func NewGuard(client Client) *Guard {
	return &Guard{client: client}
}

// WithSession acquires the guard, connects, runs fn against the client,
// and disconnects. The connection is released on every path, including
// when fn returns an error or panics.
func (g *Guard) WithSession(ctx context.Context, fn func(Client) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.client.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := g.client.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("Feeder disconnect failed")
		}
	}()

	return fn(g.client)
}

// IsConfigured reports whether the guarded client is a real device client
// rather than the null placeholder.
func (g *Guard) IsConfigured() bool {
	_, isNull := g.client.(*NullClient)
	return !isNull
}

// IsConnected reports whether a session is currently established.
func (g *Guard) IsConnected() bool {
	return g.client.IsConnected()
}
