package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates access tokens before they expire
type TokenBlacklist interface {
	// AddToBlacklist revokes one token by its jti until ttl elapses.
	// ttl should be the remaining lifetime of the token.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token's jti has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// InvalidateUserTokens revokes every token of a user issued up to now
	InvalidateUserTokens(ctx context.Context, userID int64, ttl time.Duration) error

	// IsUserTokenInvalidated reports whether a token issued at tokenIssuedAt was revoked
	// through InvalidateUserTokens
	IsUserTokenInvalidated(ctx context.Context, userID int64, tokenIssuedAt time.Time) (bool, error)
}

// NewTokenBlacklist returns a Redis blacklist over client, or an in-memory one when client is nil
func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	if client == nil {
		return NewInMemoryTokenBlacklist()
	}
	return NewRedisTokenBlacklistWithClient(client)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklistWithClient creates a token blacklist with an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "inv:token:blacklist:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID int64) string {
	return b.keyPrefix + "user:" + strconv.FormatInt(userID, 10)
}

// AddToBlacklist adds a token's jti to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's jti is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// InvalidateUserTokens stores the current Unix time in milliseconds; tokens issued at or before it are rejected
func (b *RedisTokenBlacklist) InvalidateUserTokens(ctx context.Context, userID int64, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().UnixMilli(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

// IsUserTokenInvalidated checks if a token was issued before the user's invalidation timestamp
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID int64, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	invalidatedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}
	return tokenIssuedAt.UnixMilli() <= invalidatedAt, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// Revocations are lost on restart and not shared between instances.
type InMemoryTokenBlacklist struct {
	mu            sync.Mutex
	jtiExpiry     map[string]time.Time
	invalidatedAt map[int64]time.Time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtiExpiry:     make(map[string]time.Time),
		invalidatedAt: make(map[int64]time.Time),
	}
}

// AddToBlacklist adds a token's jti to the in-memory blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtiExpiry[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's jti is blacklisted and not expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.jtiExpiry[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.jtiExpiry, jti)
		return false, nil
	}
	return true, nil
}

// InvalidateUserTokens revokes all tokens for a user issued up to now
func (b *InMemoryTokenBlacklist) InvalidateUserTokens(_ context.Context, userID int64, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidatedAt[userID] = time.Now()
	return nil
}

// IsUserTokenInvalidated compares at millisecond precision, matching the JWT iat claim
func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID int64, tokenIssuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	at, exists := b.invalidatedAt[userID]
	if !exists {
		return false, nil
	}
	return tokenIssuedAt.UnixMilli() <= at.UnixMilli(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
