package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

const keyPrefix = "darshan:session:"

func NewClient(address, username, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
}

// SessionStore keeps sessions as JSON values that expire after ttl of
// inactivity. Every save pushes the expiry out again.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Ping checks the connection, retrying a few times while redis comes up.
func (s *SessionStore) Ping(ctx context.Context) error {
	var err error
	for i := 1; i <= 5; i++ {
		if err = s.rdb.Ping(ctx).Err(); err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", i).Msg("redis not reachable yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i) * 200 * time.Millisecond):
		}
	}
	return fmt.Errorf("redis ping: %w", err)
}

func (s *SessionStore) Load(ctx context.Context, id string) (*session.State, error) {
	raw, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	var st session.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &st, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, st *session.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", id, err)
	}
	return nil
}

// Sweep is a no-op: redis expires idle sessions itself.
func (s *SessionStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
