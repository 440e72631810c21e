// Package session keeps per-user working state (carts, wizard drafts) in redis
// between requests. Values are stored as JSON under "<prefix>:<id>" with a sliding TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session changed concurrently")
)

const updateRetries = 16

type Store[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore[T any](client *redis.Client, prefix string, ttl time.Duration) *Store[T] {
	return &Store[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &v, nil
}

func (s *Store[T]) Save(ctx context.Context, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Update runs fn on the stored value, or on a zero value when none exists, and
// writes the result back only if the key did not change in between. Returning
// keep=false deletes the key. fn may run more than once.
func (s *Store[T]) Update(ctx context.Context, id string, fn func(v *T) (keep bool, err error)) (*T, error) {
	key := s.key(id)
	var out *T

	txf := func(tx *redis.Tx) error {
		var v T
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get failed: %w", err)
		default:
			if err := json.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("unmarshal session failed: %w", err)
			}
		}

		keep, err := fn(&v)
		if err != nil {
			return err
		}
		var encoded []byte
		if keep {
			if encoded, err = json.Marshal(&v); err != nil {
				return fmt.Errorf("marshal session failed: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if keep {
				pipe.Set(ctx, key, encoded, s.ttl)
			} else {
				pipe.Del(ctx, key)
			}
			return nil
		})
		out = &v
		return err
	}

	for range updateRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: %w", key, ErrConflict)
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *Store[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}
