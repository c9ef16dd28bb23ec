package suggestionstore

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

const (
	// DefaultTTL bounds how long a generated set is served from cache.
	DefaultTTL = time.Hour
	// DefaultMaxEntries bounds the store size.
	DefaultMaxEntries = 100
)

type entry struct {
	key         string
	suggestions suggestion.SuggestionSet
	createdAt   time.Time
}

// MemoryStore is a process-local suggestion cache. Entries expire on read
// once older than the TTL and are evicted in insertion order when the store
// grows past its bound.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	order   *list.List
	entries map[string]*list.Element
	now     func() time.Time
}

// NewMemoryStore constructs a store. Non-positive arguments use the defaults.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		ttl:     ttl,
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[string]*list.Element, maxEntries+1),
		now:     time.Now,
	}
}

// Get implements suggestion.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (suggestion.SuggestionSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	e := el.Value.(*entry)
	if s.now().Sub(e.createdAt) > s.ttl {
		s.order.Remove(el)
		delete(s.entries, key)
		return nil, false, nil
	}
	return append(suggestion.SuggestionSet(nil), e.suggestions...), true, nil
}

// Set implements suggestion.Store. Overwriting a key refreshes its timestamp
// but keeps its insertion position.
func (s *MemoryStore) Set(_ context.Context, key string, suggestions suggestion.SuggestionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := append(suggestion.SuggestionSet(nil), suggestions...)
	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.suggestions = set
		e.createdAt = s.now()
		return nil
	}
	s.entries[key] = s.order.PushBack(&entry{key: key, suggestions: set, createdAt: s.now()})
	for len(s.entries) > s.max {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*entry).key)
	}
	return nil
}

// Len reports the number of entries, including ones not yet found stale.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ suggestion.Store = (*MemoryStore)(nil)
