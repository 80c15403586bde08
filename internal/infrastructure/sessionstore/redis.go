package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"herald-hub/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyFmt = "herald:session:%s:token"
	userKeyFmt  = "herald:session:%s:user"
)

// RedisStore persists sessions in Redis so they survive hub restarts.
// Implements domain.SessionStore.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis using a URL of the form
// redis://host:port/db.
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

// NewRedisStoreWithClient wraps an existing client; used by tests.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes both keys in a single pipeline so a concurrent Load sees
// either the whole pair or (transiently) nothing usable, never a lone
// token treated as a session.
func (s *RedisStore) Save(ctx context.Context, sessionID, token string, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fmt.Sprintf(tokenKeyFmt, sessionID), token, s.ttl)
		pipe.Set(ctx, fmt.Sprintf(userKeyFmt, sessionID), raw, s.ttl)
		return nil
	})
	return err
}

// Load returns the stored session, or ErrSessionNotFound when either key
// is missing or the profile is corrupt. Corrupt leftovers are removed so
// they cannot shadow a later login.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	tokenKey := fmt.Sprintf(tokenKeyFmt, sessionID)
	userKey := fmt.Sprintf(userKeyFmt, sessionID)

	values, err := s.client.MGet(ctx, tokenKey, userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	token, _ := values[0].(string)
	rawUser, _ := values[1].(string)

	sess, ok := decode(sessionID, record{token: token, rawUser: []byte(rawUser)})
	if !ok {
		// One stale half or unreadable profile; drop whatever is left.
		s.client.Del(ctx, tokenKey, userKey)
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Clear removes both keys.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx,
		fmt.Sprintf(tokenKeyFmt, sessionID),
		fmt.Sprintf(userKeyFmt, sessionID),
	).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
