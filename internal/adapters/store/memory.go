package store

import (
	"context"
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
)

type Memory struct {
	mu    sync.RWMutex
	rooms map[domain.RoomCode]domain.Room
}

func NewMemory() *Memory {
	return &Memory{
		rooms: make(map[domain.RoomCode]domain.Room),
	}
}

func (m *Memory) Save(_ context.Context, room domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.Code] = room.Clone()
	return nil
}

func (m *Memory) FindByCode(_ context.Context, code domain.RoomCode) (domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[code]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, code domain.RoomCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
