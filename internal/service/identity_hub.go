package service

import (
	"sync"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

// identityHub fans identity changes out to the observers of each visitor session.
// Emissions are delivered one at a time, whichever runs last wins. Each session
// keeps an emission count so a late initial load cannot overwrite a newer change.
type identityHub struct {
	deliverMu sync.Mutex

	mu     sync.Mutex
	nextID uint64
	subs   map[string]map[uint64]*subscription
	gens   map[string]uint64
}

func newIdentityHub() *identityHub {
	return &identityHub{
		subs: make(map[string]map[uint64]*subscription),
		gens: make(map[string]uint64),
	}
}

func (h *identityHub) subscribe(sessionID string, fn ports.IdentityObserver) *subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub := &subscription{hub: h, sessionID: sessionID, id: h.nextID, gen: h.gens[sessionID], fn: fn}
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[uint64]*subscription)
	}
	h.subs[sessionID][sub.id] = sub
	return sub
}

func (h *identityHub) remove(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[sub.sessionID]
	delete(set, sub.id)
	if len(set) == 0 {
		delete(h.subs, sub.sessionID)
		delete(h.gens, sub.sessionID)
	}
}

func (h *identityHub) emit(sessionID string, id *domainauth.Identity) {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	targets := make([]*subscription, 0, len(h.subs[sessionID]))
	for _, sub := range h.subs[sessionID] {
		targets = append(targets, sub)
	}
	if len(targets) > 0 {
		h.gens[sessionID]++
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.deliver(id)
	}
}

// deliverInitial hands sub the identity loaded at subscribe time, unless the
// session emitted since then. It reports whether the value was delivered.
func (h *identityHub) deliverInitial(sub *subscription, id *domainauth.Identity) bool {
	h.deliverMu.Lock()
	defer h.deliverMu.Unlock()

	h.mu.Lock()
	stale := h.gens[sub.sessionID] != sub.gen
	h.mu.Unlock()
	if stale {
		return false
	}
	sub.deliver(id)
	return true
}

// observers returns how many subscriptions sessionID has.
func (h *identityHub) observers(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}

type subscription struct {
	hub       *identityHub
	sessionID string
	id        uint64
	gen       uint64 // session emission count when subscribed
	fn        ports.IdentityObserver

	mu       sync.Mutex
	released bool
	once     sync.Once
}

// deliver calls the observer with its own copy of id unless the subscription was released.
func (s *subscription) deliver(id *domainauth.Identity) {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released || s.fn == nil {
		return
	}
	if id != nil {
		cp := *id
		id = &cp
	}
	s.fn(id)
}

// Release deregisters the observer. Safe to call more than once.
func (s *subscription) Release() {
	s.once.Do(func() {
		s.mu.Lock()
		s.released = true
		s.mu.Unlock()
		s.hub.remove(s)
	})
}
