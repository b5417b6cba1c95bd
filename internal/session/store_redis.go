package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "draughts:session:"
	indexKey  = "draughts:sessions"

	// optimistic update attempts before reporting ErrConcurrentUpdate
	maxTxRetries = 3
)

// RedisStore keeps JSON snapshots under draughts:session:<id> with a TTL and
// tracks ids in the draughts:sessions set.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return keyPrefix + strings.TrimSpace(id) }

func (s *RedisStore) Create(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, sessionKey(snap.ID), raw, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrExists
	}
	return s.rdb.SAdd(ctx, indexKey, snap.ID).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(raw)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Snapshot) error) (*Snapshot, error) {
	key := sessionKey(id)
	var out *Snapshot
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		cur, err := decodeSnapshot(raw)
		if err != nil {
			return err
		}
		if err := fn(cur); err != nil {
			return err
		}
		newRaw, err := json.Marshal(cur)
		if err != nil {
			return err
		}
		pipe := tx.TxPipeline()
		pipe.Set(ctx, key, newRaw, s.ttl)
		pipe.SAdd(ctx, indexKey, id)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		out = cur
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("update %s: %w", id, ErrConcurrentUpdate)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.rdb.TxPipeline()
	del := pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of live sessions and prunes expired ids from the index.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	pipe := s.rdb.Pipeline()
	checks := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		checks[i] = pipe.Exists(ctx, sessionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	live := 0
	var stale []any
	for i, c := range checks {
		if c.Val() > 0 {
			live++
		} else {
			stale = append(stale, ids[i])
		}
	}
	if len(stale) > 0 {
		_ = s.rdb.SRem(ctx, indexKey, stale...).Err()
	}
	return live, nil
}

func decodeSnapshot(raw []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
	}
	return &snap, nil
}
