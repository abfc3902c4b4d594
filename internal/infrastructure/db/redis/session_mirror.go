package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// SessionMirrorStore keeps the non-authoritative "who is logged in" record in
// Redis. Key format: session:<account_id>; the value is the JSON claim set
// and expires with the token ttl. Authorization never reads this store.
type SessionMirrorStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionMirror creates a SessionMirrorStore. The ttl should equal the
// token lifetime so the mirror cannot outlive the token it shadows.
func NewSessionMirror(client *redis.Client, ttl time.Duration) *SessionMirrorStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionMirrorStore{client: client, ttl: ttl}
}

// Put writes or refreshes the mirror record for the claim set's account.
func (s *SessionMirrorStore) Put(ctx context.Context, claims domain.ClaimSet) error {
	payload, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("marshal session mirror: %w", err)
	}
	if err := s.client.Set(ctx, s.key(claims.AccountID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session mirror: %w", err)
	}
	return nil
}

// Get returns the mirrored claim set, or domain.ErrAccountNotFound when no
// record exists.
func (s *SessionMirrorStore) Get(ctx context.Context, accountID string) (domain.ClaimSet, error) {
	payload, err := s.client.Get(ctx, s.key(accountID)).Bytes()
	if err == redis.Nil {
		return domain.ClaimSet{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.ClaimSet{}, fmt.Errorf("read session mirror: %w", err)
	}

	var claims domain.ClaimSet
	if err := json.Unmarshal(payload, &claims); err != nil {
		return domain.ClaimSet{}, fmt.Errorf("decode session mirror: %w", err)
	}
	return claims, nil
}

// Clear removes the mirror record. Clearing an absent record is not an error.
func (s *SessionMirrorStore) Clear(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, s.key(accountID)).Err(); err != nil {
		return fmt.Errorf("clear session mirror: %w", err)
	}
	return nil
}

func (s *SessionMirrorStore) key(accountID string) string {
	return "session:" + accountID
}
