package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/jnu-cse/cse-portal/internal/ports"
)

// ErrRegistryClosed is returned by Acquire after Close.
var ErrRegistryClosed = errors.New("session registry closed")

// SessionRegistry shares one SessionContext among the concurrent requests of a
// visitor session. The last release closes the context.
type SessionRegistry struct {
	provider ports.IdentityProvider
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*registryEntry
	closed  bool
}

type registryEntry struct {
	sc   *SessionContext
	refs int
}

// NewSessionRegistry creates a registry backed by provider.
func NewSessionRegistry(provider ports.IdentityProvider, logger *slog.Logger) *SessionRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRegistry{
		provider: provider,
		logger:   logger.With("component", "session_registry"),
		entries:  make(map[string]*registryEntry),
	}
}

// Acquire returns the context for sessionID and a release func that must be called once done.
func (r *SessionRegistry) Acquire(sessionID string) (*SessionContext, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, nil, ErrRegistryClosed
	}
	e, ok := r.entries[sessionID]
	if !ok {
		e = &registryEntry{sc: NewSessionContext(sessionID, r.provider)}
		r.entries[sessionID] = e
	}
	e.refs++

	var once sync.Once
	release := func() {
		once.Do(func() { r.release(sessionID, e) })
	}
	return e.sc, release, nil
}

func (r *SessionRegistry) release(sessionID string, e *registryEntry) {
	r.mu.Lock()
	if r.entries[sessionID] != e {
		r.mu.Unlock()
		return
	}
	e.refs--
	last := e.refs <= 0
	if last {
		delete(r.entries, sessionID)
	}
	r.mu.Unlock()

	if last {
		e.sc.Close()
	}
}

// Len returns the number of live contexts.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Closed reports whether Close was called.
func (r *SessionRegistry) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close closes every live context and rejects further Acquire calls.
func (r *SessionRegistry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	entries := r.entries
	r.entries = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, e := range entries {
		e.sc.Close()
	}
	r.logger.Debug("session registry closed", "contexts", len(entries))
	return nil
}
