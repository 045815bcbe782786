package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Store is the process-wide session registry. The store mutex guards only
// the map; session state is guarded by each session's own mutex, so requests
// for different session ids never contend.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewStore creates an empty store. ttl is the idle lifetime used by the
// expiry sweep.
func NewStore(ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger.With().Str("component", "session-store").Logger(),
	}
}

// GetOrCreate returns the session for id, creating it if absent. Under
// concurrent first messages for the same id the first writer wins and every
// caller observes the same session.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	// Re-check under the write lock; another request may have created it.
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = New(id)
	st.sessions[id] = s
	st.logger.Debug().Str("session_id", id).Msg("session created")
	return s
}

// Get returns the session for id, if present.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session for id. A later message with the same id starts
// a fresh session with a clean history.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// SweepExpired removes every session whose idle TTL has elapsed and returns
// the number removed. It is safe to run concurrently with live request
// handling.
func (st *Store) SweepExpired() int {
	now := time.Now().UTC()

	st.mu.RLock()
	var expired []string
	for id, s := range st.sessions {
		if s.Expired(now, st.ttl) {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}

	removed := 0
	st.mu.Lock()
	for _, id := range expired {
		// Re-check expiry: the session may have seen activity between the
		// scan and the removal.
		if s, ok := st.sessions[id]; ok && s.Expired(now, st.ttl) {
			delete(st.sessions, id)
			removed++
		}
	}
	st.mu.Unlock()

	if removed > 0 {
		st.logger.Info().Int("removed", removed).Msg("expired sessions swept")
	}
	return removed
}

// RunSweeper periodically sweeps expired sessions until ctx is cancelled.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.SweepExpired()
		}
	}
}
