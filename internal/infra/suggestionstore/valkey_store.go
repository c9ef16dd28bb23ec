package suggestionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
)

// ValkeyStore shares the suggestion cache between instances. Expiry is left
// to the server; a list of keys in insertion order enforces the size bound.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
	max    int64
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration, maxEntries int) *ValkeyStore {
	if prefix == "" {
		prefix = "suggestions"
	}
	if ttl < time.Second {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl, max: int64(maxEntries)}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (suggestion.SuggestionSet, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.entryKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var set suggestion.SuggestionSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, false, err
	}
	return set, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, suggestions suggestion.SuggestionSet) error {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	entryKey := s.entryKey(key)
	exists, err := s.client.Do(ctx, s.client.B().Exists().Key(entryKey).Build()).AsInt64()
	if err != nil {
		return err
	}
	if err := s.client.Do(ctx, s.client.B().Set().Key(entryKey).Value(string(payload)).Ex(s.ttl).Build()).Error(); err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	// an expired key may still sit in the order list
	if err := s.client.Do(ctx, s.client.B().Lrem().Key(s.orderKey()).Count(0).Element(entryKey).Build()).Error(); err != nil {
		return err
	}
	size, err := s.client.Do(ctx, s.client.B().Rpush().Key(s.orderKey()).Element(entryKey).Build()).AsInt64()
	if err != nil {
		return err
	}
	for ; size > s.max; size-- {
		oldest, err := s.client.Do(ctx, s.client.B().Lpop().Key(s.orderKey()).Build()).ToString()
		if err != nil {
			if valkey.IsValkeyNil(err) {
				return nil
			}
			return err
		}
		if err := s.client.Do(ctx, s.client.B().Del().Key(oldest).Build()).Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:entry:%s", s.prefix, key)
}

func (s *ValkeyStore) orderKey() string {
	return fmt.Sprintf("%s:order", s.prefix)
}

var _ suggestion.Store = (*ValkeyStore)(nil)
