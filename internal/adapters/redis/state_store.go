package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pollbooth/pollbooth-ui/internal/ports"
)

// StateStore issues single-use login states backed by Redis. Consume uses
// GETDEL, so for any issued state exactly one caller observes it even when a
// callback is replayed or duplicated across tabs.
type StateStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.StateStore = (*StateStore)(nil)

// NewStateStore creates a new Redis-based login state store.
func NewStateStore(client redis.UniversalClient) *StateStore {
	return &StateStore{
		client: client,
		prefix: "login_state:",
	}
}

func (s *StateStore) Issue(ctx context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("state TTL must be positive")
	}
	if err := s.client.Set(ctx, s.prefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	_, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis getdel: %w", err)
	}
	return true, nil
}
