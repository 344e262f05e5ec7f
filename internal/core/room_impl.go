package core

import (
	"sync"

	"github.com/dkeye/Huddle/internal/domain"
)

type RoomState int

const (
	RoomForming RoomState = iota
	RoomActive
	RoomDisposed
)

func (s RoomState) String() string {
	switch s {
	case RoomForming:
		return "forming"
	case RoomActive:
		return "active"
	case RoomDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Room guards one domain.Room. Every read or mutation of the aggregate
// happens between Lock and Unlock; Info is the only self-locking accessor.
type Room struct {
	mu    sync.Mutex
	room  *domain.Room
	state RoomState
}

func NewRoom(room *domain.Room) *Room {
	return &Room{room: room, state: RoomForming}
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// Code is immutable after creation and safe without the lock.
func (r *Room) Code() domain.RoomCode { return r.room.Code }

// The accessors below require the lock.

func (r *Room) Aggregate() *domain.Room { return r.room }
func (r *Room) State() RoomState        { return r.state }
func (r *Room) Disposed() bool          { return r.state == RoomDisposed }
func (r *Room) MarkActive()             { r.state = RoomActive }
func (r *Room) MarkDisposed()           { r.state = RoomDisposed }

func (r *Room) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		Code:             r.room.Code,
		ParticipantCount: len(r.room.Participants),
		CreatedAt:        r.room.CreatedAt,
	}
}
