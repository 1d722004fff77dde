package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisTTL = 30 * 24 * time.Hour

// RedisStore keeps the cart server side under an opaque session id.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context, token string) domain.Cart {
	if _, err := uuid.Parse(token); err != nil {
		return domain.Cart{}
	}
	key := sessionKey(token)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}
	}
	if err != nil {
		s.logger.Warn("session: redis get failed", zap.String("key", key), zap.Error(err))
		return domain.Cart{}
	}

	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Debug("session: discard malformed cart", zap.String("key", key), zap.Error(err))
		return domain.Cart{}
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		s.logger.Debug("session: redis expire failed", zap.String("key", key), zap.Error(err))
	}
	return emptyIfNil(c)
}

// Save writes the cart under token, minting a fresh id when token is not one
// this store issued.
func (s *RedisStore) Save(ctx context.Context, token string, c domain.Cart) (string, error) {
	if _, err := uuid.Parse(token); err != nil {
		token = uuid.NewString()
	}
	payload, err := json.Marshal(emptyIfNil(c))
	if err != nil {
		return "", fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set failed: %w", err)
	}
	return token, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("cart:session:%s", id)
}
