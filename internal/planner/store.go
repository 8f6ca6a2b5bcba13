package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 2 * time.Hour

// Store keeps planner sessions in memory and expires idle ones.
type Store struct {
	deps *Deps
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*storedSession
}

type storedSession struct {
	session  *Session
	lastUsed time.Time
}

// NewStore returns an empty Store. A non-positive ttl selects
// DefaultSessionTTL.
func NewStore(deps Deps, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		deps:     &deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*storedSession),
	}
}

// Create starts a new session. The remembered destination, if any, is read
// once here and exposed as State.InitialDestination.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	var initial string
	if s.deps.Preferences != nil {
		name, err := s.deps.Preferences.SelectedDestination(ctx)
		if err != nil {
			s.deps.logger().WarnContext(ctx, "read selected destination", "error", err)
		}
		initial = name
	}

	sess := newSession(uuid.New(), s.deps, initial)

	s.mu.Lock()
	s.sessions[sess.id] = &storedSession{session: sess, lastUsed: s.now()}
	s.mu.Unlock()
	return sess, nil
}

// Get returns a live session and refreshes its idle timer.
// Unknown or expired sessions return domain.ErrNotFound.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	now := s.now()
	if !ok || now.Sub(st.lastUsed) > s.ttl {
		delete(s.sessions, id)
		return nil, fmt.Errorf("planner.Store.Get: session %s: %w", id, domain.ErrNotFound)
	}
	st.lastUsed = now
	return st.session, nil
}

// Delete drops a session. Deleting an unknown session is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, st := range s.sessions {
		if now.Sub(st.lastUsed) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.deps.logger().DebugContext(ctx, "expired planner sessions", "count", n, "active", s.Len())
			}
		}
	}
}
