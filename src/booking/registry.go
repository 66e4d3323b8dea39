package booking

import (
	"context"
	"log"
	"receh48/src/types"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry tracks open sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	collab   Collaborators
	idleTTL  time.Duration
}

func NewRegistry(c Collaborators, idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		collab:   c,
		idleTTL:  idleTTL,
	}
}

func (r *Registry) Collaborators() Collaborators {
	return r.collab
}

// Open loads the catalog and gate for st and starts a session. A failed
// catalog load returns the *CatalogLoadError and opens nothing.
func (r *Registry) Open(ctx context.Context, st types.ServiceType) (*Session, *Catalog, error) {
	catalog, err := LoadCatalog(ctx, r.collab.Store, st)
	if err != nil {
		return nil, nil, err
	}
	gate := LoadAvailability(ctx, r.collab.Store, st)
	s := newSession(uuid.NewString(), st, r.collab, catalog, gate)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, catalog, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than the registry TTL.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	var stale []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.LastActive()) > r.idleTTL {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		log.Printf("[booking] closed %d idle sessions\n", len(stale))
	}
	return len(stale)
}

func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
