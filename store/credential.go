// Package store persists the bearer token and the serialized session
// snapshot under constant Redis keys so both survive process restarts.
// It performs no expiry checks: token lifetime is server-enforced and
// surfaces as a 401 at the gateway.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable wraps Redis transport failures.
var ErrStoreUnavailable = errors.New("credential store unavailable")

// ErrTokenNotFound is returned by Token when no bearer token is persisted.
var ErrTokenNotFound = errors.New("token not found")

// ErrSessionNotFound is returned by LoadSession when no snapshot is persisted.
var ErrSessionNotFound = errors.New("session snapshot not found")

// Store is the durable holder of the bearer token and session snapshot.
// Values are written without TTL; clearing them is an explicit operation.
type Store struct {
	redis      redis.UniversalClient
	prefix     string
	tokenKey   string
	sessionKey string
}

// New creates a [Store] backed by the given Redis client. prefix namespaces
// both keys; tokenKey and sessionKey are the constant key names.
func New(rdb redis.UniversalClient, prefix, tokenKey, sessionKey string) *Store {
	return &Store{
		redis:      rdb,
		prefix:     prefix,
		tokenKey:   tokenKey,
		sessionKey: sessionKey,
	}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// SaveToken persists the bearer token.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	if err := s.redis.Set(ctx, s.key(s.tokenKey), token, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Token returns the persisted bearer token, or [ErrTokenNotFound] when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.redis.Get(ctx, s.key(s.tokenKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return token, nil
}

// DeleteToken removes the persisted token. Deleting an absent token is a
// no-op, which keeps logout idempotent.
func (s *Store) DeleteToken(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key(s.tokenKey)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// SaveSession persists the session snapshot.
func (s *Store) SaveSession(ctx context.Context, snap *Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(s.sessionKey), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// LoadSession returns the persisted snapshot, or [ErrSessionNotFound] when
// absent.
func (s *Store) LoadSession(ctx context.Context) (*Snapshot, error) {
	data, err := s.redis.Get(ctx, s.key(s.sessionKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return Decode(data)
}

// DeleteSession removes the persisted snapshot. Idempotent.
func (s *Store) DeleteSession(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key(s.sessionKey)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return time.Since(start), nil
}
