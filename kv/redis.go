package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis is a [Store] backed by a Redis client. Keys live under a fixed
// prefix; scoped instances additionally namespace keys under a scope ID.
type Redis struct {
	redis  redis.UniversalClient
	prefix string
	scope  string
}

// NewRedis creates a durable Redis-backed [Store]. All keys are stored
// under prefix and survive process restarts.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{
		redis:  client,
		prefix: prefix,
	}
}

// NewScopedRedis creates a session-scoped Redis-backed [Store]. Keys are
// namespaced under scopeID; pass an empty scopeID to mint a fresh one
// (a new browsing session), or a previously obtained [Redis.Scope] value
// to resume an existing session across a process restart.
func NewScopedRedis(client redis.UniversalClient, prefix, scopeID string) *Redis {
	if scopeID == "" {
		scopeID = uuid.NewString()
	}
	return &Redis{
		redis:  client,
		prefix: prefix,
		scope:  scopeID,
	}
}

// Scope returns the scope ID, or "" for a durable store.
func (s *Redis) Scope() string {
	return s.scope
}

func (s *Redis) key(key string) string {
	if s.scope == "" {
		return s.prefix + ":" + key
	}
	return s.prefix + ":" + s.scope + ":" + key
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return value, true, nil
}

// Set describes the set operation and its observable behavior.
//
// Set may return an error when input validation, dependency calls, or security checks fail.
// Set does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Remove describes the remove operation and its observable behavior.
//
// Remove may return an error when input validation, dependency calls, or security checks fail.
// Remove does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Redis) Remove(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
