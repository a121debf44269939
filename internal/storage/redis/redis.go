// Package redis stores saved games in Redis. Each slot is a string key and a
// sorted set indexes the slots by last update time.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/tombs/internal/config"
	"github.com/cory-johannsen/tombs/internal/storage"
)

const indexSuffix = "index"

// Store is a Redis-backed storage.SaveStore.
type Store struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewClient builds a client from cfg. Redis connects lazily; use Ping to
// check reachability.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New returns a Store that namespaces its keys with prefix and expires saves
// after ttl; a zero ttl keeps them forever.
//
// Precondition: client must not be nil.
func New(client goredis.UniversalClient, prefix string, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis store: client must not be nil")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("redis store: ttl %s must not be negative", ttl)
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *Store) key(slot string) string { return s.prefix + slot }

func (s *Store) indexKey() string { return s.prefix + indexSuffix }

// Save implements storage.SaveStore.
func (s *Store) Save(ctx context.Context, slot string, blob []byte) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(slot), blob, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), goredis.Z{Score: float64(time.Now().UnixMilli()), Member: slot})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: saving %q: %w", slot, err)
	}
	return nil
}

// Load implements storage.SaveStore.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := storage.ValidateSlot(slot); err != nil {
		return nil, err
	}
	blob, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: loading %q: %w", slot, err)
	}
	return blob, nil
}

// Delete implements storage.SaveStore.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := storage.ValidateSlot(slot); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(slot))
	pipe.ZRem(ctx, s.indexKey(), slot)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: deleting %q: %w", slot, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %q", storage.ErrSaveNotFound, slot)
	}
	return nil
}

// List implements storage.SaveStore. Index entries whose save has expired
// are pruned.
func (s *Store) List(ctx context.Context) ([]storage.SaveInfo, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: listing: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	lens := make([]*goredis.IntCmd, len(members))
	for i, m := range members {
		lens[i] = pipe.StrLen(ctx, s.key(m.Member.(string)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis store: listing: %w", err)
	}

	var out []storage.SaveInfo
	var stale []any
	for i, m := range members {
		slot := m.Member.(string)
		n := lens[i].Val()
		if n == 0 {
			stale = append(stale, slot)
			continue
		}
		out = append(out, storage.SaveInfo{
			Slot:      slot,
			Size:      int(n),
			UpdatedAt: time.UnixMilli(int64(m.Score)),
		})
	}
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("redis store: pruning index: %w", err)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}
