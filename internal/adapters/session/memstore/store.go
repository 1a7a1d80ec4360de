// Package memstore keeps live sessions in a TTL-bounded in-process cache.
// Sessions do not survive a restart and idle ones are swept, so the map can
// never grow without bound.
package memstore

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/niharagg/brandchat/internal/domain"
)

type Store struct {
	cache *gocache.Cache
}

func New(ttl, sweepInterval time.Duration) *Store {
	return &Store{cache: gocache.New(ttl, sweepInterval)}
}

func (s *Store) Create(brandID string) (*domain.Session, error) {
	sess := domain.NewSession(uuid.NewString(), brandID)
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess, nil
}

// Get resolves a session and refreshes its TTL: active conversations stay
// alive, abandoned ones expire.
func (s *Store) Get(sessionID string) (*domain.Session, error) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sess := v.(*domain.Session)
	s.cache.Set(sessionID, sess, gocache.DefaultExpiration)
	return sess, nil
}
