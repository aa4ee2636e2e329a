// Package cache provides the Redis-backed read cache for hot lookups:
// users by id, wallets by user and the active plan catalog. The database
// stays authoritative; every ledger mutation invalidates the affected keys.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"investplus/internal/models"

	"github.com/redis/go-redis/v9"
)

const plansKey = "plans:active"

// ErrCacheUnavailable is returned from reads when no Redis client is
// configured. Callers fall through to the database.
var ErrCacheUnavailable = errors.New("cache unavailable")

// CacheService is nil-safe: a nil receiver turns writes into no-ops and
// reads into ErrCacheUnavailable, so the server can run without Redis.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

func (s *CacheService) disabled() bool {
	return s == nil || s.client == nil
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if s.disabled() {
		return nil
	}
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.disabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the cached value into dest and reports whether the key
// existed.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s.disabled() {
		return false, ErrCacheUnavailable
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s.disabled() {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", userID))
}

// Wallet caching

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	if wallet == nil {
		return errors.New("cannot cache nil wallet")
	}
	return s.Set(ctx, s.GenerateKey("wallet", "user", wallet.UserID), wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	found, err := s.Get(ctx, s.GenerateKey("wallet", "user", userID), &wallet)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("wallet not found in cache")
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("wallet", "user", userID))
}

// Plan catalog caching

func (s *CacheService) CachePlans(ctx context.Context, plans []models.ProductPlan) error {
	return s.SetWithTTL(ctx, plansKey, plans, 5*time.Minute)
}

func (s *CacheService) GetPlans(ctx context.Context) ([]models.ProductPlan, error) {
	var plans []models.ProductPlan
	found, err := s.Get(ctx, plansKey, &plans)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("plans not found in cache")
	}
	return plans, nil
}

func (s *CacheService) InvalidatePlans(ctx context.Context) error {
	return s.Delete(ctx, plansKey)
}

// Lifecycle

func (s *CacheService) HealthCheck(ctx context.Context) error {
	if s.disabled() {
		return ErrCacheUnavailable
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	if s.disabled() {
		return nil
	}
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	if s.disabled() {
		return nil
	}
	return s.client.Close()
}
