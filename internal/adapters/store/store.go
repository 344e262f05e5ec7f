// Package store holds core.RoomRepository implementations. They mirror live
// rooms for inspection and recovery tooling; the relay never reads them on
// the hot path.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkeye/Huddle/internal/config"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Closer releases a repository's connections.
type Closer func()

// Open builds the repository named by cfg.Driver. DriverNone yields a nil
// repository, which the mirror treats as disabled.
func Open(ctx context.Context, cfg config.RepositoryConfig) (core.RoomRepository, Closer, error) {
	switch cfg.Driver {
	case "", config.DriverNone:
		return nil, func() {}, nil
	case config.DriverMemory:
		return NewMemory(), func() {}, nil
	case config.DriverRedis:
		repo, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisTTL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.DriverPostgres:
		repo, err := ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown repository driver %q", cfg.Driver)
	}
}

func encodeRoom(room domain.Room) ([]byte, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("encode room %s: %w", room.Code, err)
	}
	return data, nil
}

func decodeRoom(data []byte) (domain.Room, error) {
	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return domain.Room{}, fmt.Errorf("decode room: %w", err)
	}
	return room, nil
}
