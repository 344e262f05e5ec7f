package core

import (
	"context"
	"time"

	"github.com/dkeye/Huddle/internal/domain"
)

// RoomInfo is a read-only view for the lookup API.
type RoomInfo struct {
	Code             domain.RoomCode `json:"roomCode"`
	ParticipantCount int             `json:"participantCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// RoomSnapshot is what a joiner receives: who was already here and the log so far.
type RoomSnapshot struct {
	Code              domain.RoomCode      `json:"roomCode"`
	ParticipantID     domain.ParticipantID `json:"participantId"`
	HostParticipantID domain.ParticipantID `json:"hostParticipantId"`
	Participants      []domain.Participant `json:"participants"`
	Messages          []domain.Message     `json:"messages"`
}

// RoomRepository mirrors rooms for durability. The in-memory room is the
// source of truth; implementations are written to on a best-effort basis.
type RoomRepository interface {
	Save(ctx context.Context, room domain.Room) error
	FindByCode(ctx context.Context, code domain.RoomCode) (domain.Room, error)
	Delete(ctx context.Context, code domain.RoomCode) error
}

type LifecycleKind string

const (
	LifecycleRoomCreated       LifecycleKind = "room.created"
	LifecycleRoomDisposed      LifecycleKind = "room.disposed"
	LifecycleParticipantJoined LifecycleKind = "participant.joined"
	LifecycleParticipantLeft   LifecycleKind = "participant.left"
	LifecycleMessagePosted     LifecycleKind = "message.posted"
)

// LifecycleEvent is published to downstream consumers after a room mutation.
type LifecycleEvent struct {
	Kind          LifecycleKind        `json:"kind"`
	RoomCode      domain.RoomCode      `json:"roomCode"`
	ParticipantID domain.ParticipantID `json:"participantId,omitempty"`
	DisplayName   string               `json:"displayName,omitempty"`
	Message       *domain.Message      `json:"message,omitempty"`
	At            time.Time            `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev LifecycleEvent) error
}
