package resource

import (
	"sync"
	"time"
)

// Entry is the last-known state of a cache key: the `{data, isLoading, error}`
// surface consumed by subscribers.
type Entry struct {
	Data      any
	Err       error
	Loading   bool
	FetchedAt time.Time
}

// Store is an in-process keyed cache of list results. Keys are per entity
// type; a mutation on one key never touches another. Entries are replaced
// wholesale, never patched in place.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	gens    map[string]uint64
	subs    map[string]map[int64]func(Entry)
	nextSub int64
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		gens:    make(map[string]uint64),
		subs:    make(map[string]map[int64]func(Entry)),
	}
}

// Get returns the entry for key, reporting whether one is present.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// Set replaces the entry for key with resolved data and notifies subscribers.
func (s *Store) Set(key string, data any) {
	s.publish(key, Entry{Data: data, FetchedAt: time.Now()})
}

// Generation returns the invalidation generation for key. A fetch records it
// before reading the gateway and hands it back to SetIfCurrent.
func (s *Store) Generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

// SetIfCurrent stores resolved data only when no Invalidate landed on key
// since gen was read, reporting whether the entry was written. A stale
// snapshot from a fetch that raced a mutation is discarded so it cannot bury
// the invalidation.
func (s *Store) SetIfCurrent(key string, data any, gen uint64) bool {
	s.mu.Lock()
	if s.gens[key] != gen {
		s.mu.Unlock()
		return false
	}
	s.entries[key] = Entry{Data: data, FetchedAt: time.Now()}
	fns := s.snapshotSubs(key)
	entry := s.entries[key]
	s.mu.Unlock()
	for _, fn := range fns {
		fn(entry)
	}
	return true
}

// Fail records a fetch failure for key. The error entry is kept so consumers
// can render it; the next read attempt replaces it.
func (s *Store) Fail(key string, err error) {
	s.publish(key, Entry{Err: err, FetchedAt: time.Now()})
}

// SetLoading marks key as having a fetch in flight.
func (s *Store) SetLoading(key string) {
	s.publish(key, Entry{Loading: true})
}

// Invalidate drops the entry for key, bumps its generation so in-flight
// fetches cannot restore a pre-mutation snapshot, and notifies subscribers
// with an absent entry. It never re-fetches itself: the read path is
// pull-based and the next List call repopulates the key.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.gens[key]++
	fns := s.snapshotSubs(key)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(Entry{})
	}
}

// Subscribe registers fn to observe every entry change for key. The returned
// function removes the subscription.
func (s *Store) Subscribe(key string, fn func(Entry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[int64]func(Entry))
	}
	s.nextSub++
	id := s.nextSub
	s.subs[key][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

func (s *Store) publish(key string, entry Entry) {
	s.mu.Lock()
	s.entries[key] = entry
	fns := s.snapshotSubs(key)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(entry)
	}
}

// snapshotSubs copies the callback list so notifications run outside the lock.
func (s *Store) snapshotSubs(key string) []func(Entry) {
	fns := make([]func(Entry), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	return fns
}
