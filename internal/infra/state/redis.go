package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

const keyPrefix = "booking:state:"

// RedisStore mantém o estado fora do processo, para várias instâncias ou
// para sobreviver a restart. Cada conversa é uma chave própria com TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func key(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func (s *RedisStore) Get(ctx context.Context, id int64) (booking.State, error) {
	raw, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return booking.State{}, nil
	}
	if err != nil {
		return booking.State{}, httperr.Storage("get state", err)
	}

	var st booking.State
	if err := json.Unmarshal(raw, &st); err != nil {
		// estado ilegível equivale a não ter estado
		return booking.State{}, nil
	}
	return st, nil
}

func (s *RedisStore) Set(ctx context.Context, id int64, st booking.State) error {
	st.UpdatedAt = time.Now()

	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := s.rdb.Set(ctx, key(id), raw, s.ttl).Err(); err != nil {
		return httperr.Storage("set state", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, id int64) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return httperr.Storage("clear state", err)
	}
	return nil
}

var _ booking.StateStore = (*RedisStore)(nil)
