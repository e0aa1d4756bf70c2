package memory

import (
	"context"
	"fmt"
	"sync"

	"documind-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionLoadError means a session exists but its in-memory state could
// not be rebuilt (missing index file, provider construction failure, ...).
type SessionLoadError struct {
	SessionID string
	Err       error
}

func (e *SessionLoadError) Error() string {
	return fmt.Sprintf("load session %s: %v", e.SessionID, e.Err)
}

func (e *SessionLoadError) Unwrap() error {
	return e.Err
}

// RehydrateFunc rebuilds the full in-memory state for a session from its
// persisted record and index file.
type RehydrateFunc func(ctx context.Context, sessionID string) (*store.ActiveSession, error)

// ActiveSessionCache keeps hydrated sessions in memory for the lifetime of
// the process. Entries never expire; they leave the cache only through
// Invalidate. An entry is always complete: the load path stores nothing
// on failure.
type ActiveSessionCache struct {
	cache     *cache.Cache
	rehydrate RehydrateFunc

	// loadMu serializes rehydration so concurrent requests for one session
	// trigger a single load.
	loadMu sync.Mutex
}

func NewActiveSessionCache(rehydrate RehydrateFunc) *ActiveSessionCache {
	c := cache.New(cache.NoExpiration, 0)
	return &ActiveSessionCache{
		cache:     c,
		rehydrate: rehydrate,
	}
}

func (r *ActiveSessionCache) Put(session *store.ActiveSession) {
	r.cache.Set(session.SessionID, session, cache.NoExpiration)
}

func (r *ActiveSessionCache) Get(sessionID string) (*store.ActiveSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ActiveSession), true
	}
	return nil, false
}

// EnsureLoaded returns the cached state for a session, rebuilding it on a
// miss. Failures surface as *SessionLoadError and leave no cache entry.
func (r *ActiveSessionCache) EnsureLoaded(ctx context.Context, sessionID string) (*store.ActiveSession, error) {
	if s, ok := r.Get(sessionID); ok {
		return s, nil
	}

	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	// Another request may have finished the load while we waited.
	if s, ok := r.Get(sessionID); ok {
		return s, nil
	}

	s, err := r.rehydrate(ctx, sessionID)
	if err != nil {
		if lerr, ok := err.(*SessionLoadError); ok {
			return nil, lerr
		}
		return nil, &SessionLoadError{SessionID: sessionID, Err: err}
	}
	if s == nil {
		return nil, &SessionLoadError{SessionID: sessionID, Err: fmt.Errorf("rehydrate returned no state")}
	}

	r.Put(s)
	return s, nil
}

func (r *ActiveSessionCache) Invalidate(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *ActiveSessionCache) Len() int {
	return r.cache.ItemCount()
}
