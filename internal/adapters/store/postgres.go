package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/adapters/store/migrations"
	"github.com/dkeye/Huddle/internal/domain"
)

// Postgres keeps the latest state of every live room in one row. The table
// is created by the embedded migrations.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ConnectPostgres migrates the schema, then opens a pool.
func ConnectPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if err := migrations.Up(dsn); err != nil {
		return nil, err
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info().Str("module", "store.postgres").Msg("connected")
	return NewPostgres(pool), nil
}

func (p *Postgres) Save(ctx context.Context, room domain.Room) error {
	data, err := encodeRoom(room)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO rooms (code, host_participant_id, participant_count, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (code) DO UPDATE
		SET participant_count = EXCLUDED.participant_count,
		    state = EXCLUDED.state,
		    updated_at = now()`
	_, err = p.pool.Exec(ctx, query,
		string(room.Code),
		string(room.HostParticipantID),
		len(room.Participants),
		data,
		room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres save room %s: %w", room.Code, err)
	}
	return nil
}

func (p *Postgres) FindByCode(ctx context.Context, code domain.RoomCode) (domain.Room, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM rooms WHERE code = $1`, string(code)).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("postgres find room %s: %w", code, err)
	}
	return decodeRoom(data)
}

func (p *Postgres) Delete(ctx context.Context, code domain.RoomCode) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM rooms WHERE code = $1`, string(code)); err != nil {
		return fmt.Errorf("postgres delete room %s: %w", code, err)
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
