// Package session keeps one cart and one identity per connected client.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"artisan/internal/cart"
	"artisan/internal/services"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"
	"artisan/pkg/storage"

	"github.com/google/uuid"
)

// Session is the state owned by a single client. The cart lives only in
// memory; the identity is mirrored to storage under KeyPrefix(ID).
type Session struct {
	ID        string
	CreatedAt time.Time
	Cart      *cart.Ledger
	Identity  *services.IdentityStore

	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is the last time the session was looked up.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// IdentityFactory builds the identity store for a session from its scoped
// view of storage.
type IdentityFactory func(ctx context.Context, store *storage.Store) *services.IdentityStore

// KeyPrefix is the storage namespace of a session.
func KeyPrefix(id string) string {
	return fmt.Sprintf("session:%s:", id)
}

// Manager is the registry of live sessions. Sessions idle for longer than
// the TTL are dropped by Sweep, which a background goroutine runs every
// sweep interval until Close.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	store       *storage.Store
	newIdentity IdentityFactory
	ttl         time.Duration

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates a Manager. A non-positive sweepInterval disables the
// background sweeper.
func NewManager(store *storage.Store, newIdentity IdentityFactory, ttl, sweepInterval time.Duration) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		store:       store,
		newIdentity: newIdentity,
		ttl:         ttl,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	if sweepInterval > 0 {
		go m.sweepLoop(sweepInterval)
	} else {
		close(m.done)
	}
	return m
}

// Create registers a session with a fresh id.
func (m *Manager) Create(ctx context.Context) *Session {
	s := m.build(ctx, uuid.New().String())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Debug("session: created %s", s.ID)
	return s
}

// Get returns a live session and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if ok {
		s.touch(time.Now())
	}
	return s, ok
}

// Resume returns the live session for id or, when the process no longer
// holds it, rebuilds it from storage. A rebuilt session keeps its identity
// and starts with an empty cart.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.Unauthorized("Session id is required", nil)
	}
	if s, ok := m.Get(id); ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have rebuilt it while we were unlocked.
	if s, ok := m.sessions[id]; ok {
		s.touch(time.Now())
		return s, nil
	}
	s := m.build(ctx, id)
	m.sessions[id] = s
	logger.Debug("session: resumed %s", id)
	return s, nil
}

// Delete drops a session and its stored identity.
func (m *Manager) Delete(ctx context.Context, id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.store.WithPrefix(KeyPrefix(id)).Clear(ctx)
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every session not seen within the TTL before now and
// returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)

	var expired []string
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ctx := context.Background()
	for _, id := range expired {
		m.store.WithPrefix(KeyPrefix(id)).Clear(ctx)
	}
	if len(expired) > 0 {
		logger.Info("session: swept %d idle sessions", len(expired))
	}
	return len(expired)
}

// Close stops the background sweeper and waits for it to exit.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stop)
	})
	<-m.done
}

func (m *Manager) sweepLoop(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

func (m *Manager) build(ctx context.Context, id string) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      cart.NewLedger(),
		Identity:  m.newIdentity(ctx, m.store.WithPrefix(KeyPrefix(id))),
	}
	s.touch(now)
	return s
}
