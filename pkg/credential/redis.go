package credential

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/suteetoe/stockmobile/pkg/logger"
)

// RedisStore keeps the token in Redis, namespaced by installation id
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// RedisOptions configures the Redis-backed store
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Namespace separates installations sharing one Redis instance
	Namespace string
}

func NewRedisStore(opts RedisOptions, log *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStoreFromClient(client, opts.Namespace, log)
}

func NewRedisStoreFromClient(client *redis.Client, namespace string, log *zap.Logger) *RedisStore {
	if namespace == "" {
		namespace = "stockmobile"
	}
	return &RedisStore{
		client: client,
		key:    namespace + ":" + TokenKey,
		logger: logger.OrNop(log),
	}
}

// Ping checks connectivity to the Redis server
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping redis")
	}
	return nil
}

func (s *RedisStore) Current(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("Failed to read token", zap.String("key", s.key), zap.Error(err))
		return "", false, errors.Wrap(err, "read token")
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		s.logger.Error("Failed to store token", zap.String("key", s.key), zap.Error(err))
		return errors.Wrap(err, "store token")
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.logger.Error("Failed to clear token", zap.String("key", s.key), zap.Error(err))
		return errors.Wrap(err, "clear token")
	}
	return nil
}

// Close releases the Redis connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}
