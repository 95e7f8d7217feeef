package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps pending OAuth handshake state in process
// memory. Entries expire on their own; the JWT is the session credential,
// so nothing here needs to survive a restart.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// SaveState stores a pending OAuth state token keyed by itself; the
// callback consumes it exactly once.
func (r *SessionRepository) SaveState(state string) {
	r.cache.Set("oauth_state:"+state, true, 10*time.Minute)
}

func (r *SessionRepository) ConsumeState(state string) bool {
	key := "oauth_state:" + state
	if _, found := r.cache.Get(key); found {
		r.cache.Delete(key)
		return true
	}
	return false
}
