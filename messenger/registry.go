package messenger

import "sync"

// Registry tracks which connections each user currently holds. One user may
// own several concurrent sessions (multi-tab, multi-device); sessions of the
// same user have no ordering relationship. The registry only mutates its own
// map — presence transitions are driven by callers reacting to Deregister's
// return value.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uint]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uint]map[string]struct{}),
	}
}

// Register admits a connection for the user.
func (r *Registry) Register(userID uint, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.sessions[userID]
	if !ok {
		conns = make(map[string]struct{})
		r.sessions[userID] = conns
	}
	conns[connectionID] = struct{}{}
}

// Deregister removes a connection and reports whether it was the user's last
// one, so callers can gate the offline transition. A user closing one of two
// tabs stays online.
func (r *Registry) Deregister(userID uint, connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.sessions[userID]
	if !ok {
		return false
	}
	if _, ok := conns[connectionID]; !ok {
		return false
	}
	delete(conns, connectionID)
	if len(conns) == 0 {
		delete(r.sessions, userID)
		return true
	}
	return false
}

// Connections returns the user's live connection ids, possibly empty.
func (r *Registry) Connections(userID uint) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]string, 0, len(r.sessions[userID]))
	for id := range r.sessions[userID] {
		conns = append(conns, id)
	}
	return conns
}

// Online reports whether the user holds at least one live session.
func (r *Registry) Online(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions[userID]) > 0
}
