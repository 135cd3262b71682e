package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Freeeeeet/academy_scheduler/internal/scheduling"
)

const keyPrefix = "academy:dialogue:"

// RedisStore диалоги в Redis в виде JSON; срок жизни продлевается при каждом сохранении
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient клиент по адресу и паролю из конфига
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (s *RedisStore) Load(ctx context.Context, key string) (scheduling.Dialogue, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return idle(), nil
		}
		return scheduling.Dialogue{}, fmt.Errorf("get dialogue %s: %w", key, err)
	}

	var d scheduling.Dialogue
	if err := json.Unmarshal(data, &d); err != nil {
		return scheduling.Dialogue{}, fmt.Errorf("decode dialogue %s: %w", key, err)
	}
	return d, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, d scheduling.Dialogue) error {
	if isBlank(d) {
		return s.Delete(ctx, key)
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dialogue %s: %w", key, err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set dialogue %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete dialogue %s: %w", key, err)
	}
	return nil
}

// Ping проверка соединения для /healthz
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
