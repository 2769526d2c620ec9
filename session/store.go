package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when the subject has no live session entry.
var ErrSessionNotFound = errors.New("session not found")

// ErrRedisUnavailable is an exported constant or variable used by the authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is a Redis-backed session store holding the single currently-valid
// token per subject.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace ("session" by convention).
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

// Save persists the subject's token with the given TTL, displacing any
// previous token for the same subject.
func (s *Store) Save(ctx context.Context, subjectID, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(subjectID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get returns the subject's currently stored token, or [ErrSessionNotFound]
// when the entry is absent or expired.
func (s *Store) Get(ctx context.Context, subjectID string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(subjectID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

// Matches reports whether the presented token exactly equals the stored one.
// An absent entry is a plain no-match, not an error, so revoked and expired
// sessions fail verification the same way.
func (s *Store) Matches(ctx context.Context, subjectID, token string) (bool, error) {
	stored, err := s.Get(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	if len(stored) != len(token) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

// Delete removes the subject's session entry. Deleting an absent entry is
// not an error; revocation is idempotent.
func (s *Store) Delete(ctx context.Context, subjectID string) error {
	if err := s.redis.Del(ctx, s.key(subjectID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) key(subjectID string) string {
	return s.prefix + ":" + subjectID
}
