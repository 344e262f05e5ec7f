package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/domain"
)

const (
	DefaultRedisTTL = 24 * time.Hour
	redisKeyPrefix  = "huddle:room:"
)

// Redis stores each room as one JSON value with a TTL, so a crashed process
// leaves nothing behind for longer than the TTL.
type Redis struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &Redis{client: client, ttl: ttl, keyPrefix: redisKeyPrefix}
}

// DialRedis connects and pings before returning.
func DialRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	log.Info().Str("module", "store.redis").Str("addr", addr).Dur("ttl", ttl).Msg("connected")
	return NewRedis(client, ttl), nil
}

func (r *Redis) key(code domain.RoomCode) string {
	return r.keyPrefix + string(code)
}

func (r *Redis) Save(ctx context.Context, room domain.Room) error {
	data, err := encodeRoom(room)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(room.Code), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save room %s: %w", room.Code, err)
	}
	return nil
}

func (r *Redis) FindByCode(ctx context.Context, code domain.RoomCode) (domain.Room, error) {
	data, err := r.client.Get(ctx, r.key(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("redis find room %s: %w", code, err)
	}
	return decodeRoom(data)
}

func (r *Redis) Delete(ctx context.Context, code domain.RoomCode) error {
	if err := r.client.Del(ctx, r.key(code)).Err(); err != nil {
		return fmt.Errorf("redis delete room %s: %w", code, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
