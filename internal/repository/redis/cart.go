// Package redis implements the cart snapshot store on Redis so a public
// cart survives page reloads. Snapshots are JSON-encoded line collections
// keyed by shopper session, with a TTL so abandoned carts expire.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/varmina/backend/internal/entity"
	"github.com/varmina/backend/internal/repository"
)

type cartStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewCartStore creates a CartStore over the given client. Snapshots expire
// after ttl.
func NewCartStore(client *goredis.Client, ttl time.Duration) repository.CartStore {
	return &cartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *cartStore) Save(ctx context.Context, sessionID string, lines []entity.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

func (s *cartStore) Load(ctx context.Context, sessionID string) ([]entity.CartLine, error) {
	payload, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil // no snapshot, empty cart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var lines []entity.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}
	return lines, nil
}

func (s *cartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
