package auth

import (
	"sync"
	"time"

	"github.com/huangsam/clio/schema"
)

// Session limits used by NewSessionManager.
const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultMaxSessions = 10000
)

// SessionManager keeps logged-in sessions in memory, keyed by token.
// A session expires after TTL without use; past MaxSessions the least recently used is evicted.
type SessionManager struct {
	TTL         time.Duration // Idle lifetime; zero disables expiry
	MaxSessions int           // Zero disables the cap
	Now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session  schema.Session
	lastSeen time.Time
}

// NewSessionManager returns an empty SessionManager with the default limits.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		TTL:         DefaultSessionTTL,
		MaxSessions: DefaultMaxSessions,
		Now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

func (m *SessionManager) expired(e *sessionEntry, now time.Time) bool {
	return m.TTL > 0 && now.Sub(e.lastSeen) >= m.TTL
}

// Put stores a session under its token, pruning expired sessions first.
func (m *SessionManager) Put(s schema.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	m.pruneLocked(now)
	if _, ok := m.sessions[s.Token]; !ok && m.MaxSessions > 0 && len(m.sessions) >= m.MaxSessions {
		m.evictOldestLocked()
	}
	m.sessions[s.Token] = &sessionEntry{session: s, lastSeen: now}
}

// Get returns the live session for token and refreshes its idle timer.
// An expired session is removed and reported as missing.
func (m *SessionManager) Get(token string) (schema.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	if !ok {
		return schema.Session{}, false
	}
	now := m.Now()
	if m.expired(e, now) {
		delete(m.sessions, token)
		return schema.Session{}, false
	}
	e.lastSeen = now
	return e.session, true
}

// Active reports whether token belongs to a live session without refreshing it.
func (m *SessionManager) Active(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[token]
	return ok && !m.expired(e, m.Now())
}

// Delete ends the session for token.
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Prune removes expired sessions and returns how many were removed.
func (m *SessionManager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(m.Now())
}

func (m *SessionManager) pruneLocked(now time.Time) int {
	removed := 0
	for token, e := range m.sessions {
		if m.expired(e, now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

func (m *SessionManager) evictOldestLocked() {
	var oldest string
	var oldestSeen time.Time
	for token, e := range m.sessions {
		if oldest == "" || e.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen = token, e.lastSeen
		}
	}
	delete(m.sessions, oldest)
}

// Len returns the number of stored sessions, including any not yet pruned.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
