package concierge

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks serializes chat turns per session so that two concurrent
// messages for the same guest cannot interleave the read-modify-write of the
// session history. Entries are reference counted and evicted once the last
// holder releases, so the map only holds sessions with turns in flight.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// acquire locks the session's mutex and returns the matching release.
func (l *sessionLocks) acquire(sessionID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &sessionLock{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
