package dashboard

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/padraicbc/f1globe/dataset"
)

// Sessions keeps one Store per user. Idle sessions expire after ttl.
type Sessions struct {
	mu       sync.Mutex
	cache    *cache.Cache
	ttl      time.Duration
	tables   *dataset.Tables
	opts     Options
	onCreate func(user string, st *Store)
}

// NewSessions creates an empty session set over t.
func NewSessions(t *dataset.Tables, opts Options, ttl time.Duration) *Sessions {
	return &Sessions{
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
		tables: t,
		opts:   opts,
	}
}

// OnCreate registers fn to run for every newly created session, before
// it is handed out. Use it to attach observers.
func (s *Sessions) OnCreate(fn func(user string, st *Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCreate = fn
}

// Get returns the user's store, creating it on first use, and extends
// its expiry.
func (s *Sessions) Get(user string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(user); ok {
		if st, ok := v.(*Store); ok {
			s.cache.Set(user, st, s.ttl)
			return st
		}
	}

	st := NewStore(New(s.tables, s.opts))
	if s.onCreate != nil {
		s.onCreate(user, st)
	}
	s.cache.Set(user, st, s.ttl)
	return st
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}
