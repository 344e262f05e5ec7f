// Package orch is the room lifecycle manager. Every mutation of a room is
// serialized here under that room's lock; rooms never share a lock.
package orch

import (
	"time"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type Limits struct {
	MaxDisplayName int
	MaxMessageLen  int
}

type Orchestrator struct {
	Registry  *app.Registry
	Out       *app.Outbox
	Rooms     *app.RoomManager
	Presence  *app.PresenceNotifier
	Broadcast *app.BroadcastRouter
	Relay     *app.SignalingRelay
	Mirror    *app.Mirror
	Limits    Limits
	Now       func() time.Time
}

type Options struct {
	Rooms  *app.RoomManager
	Policy app.Policy
	Mirror *app.Mirror
	Limits Limits
	Now    func() time.Time
}

// New wires the components around one registry and outbox.
func New(opts Options) *Orchestrator {
	if opts.Rooms == nil {
		opts.Rooms = app.NewRoomManager(app.RoomManagerConfig{Now: opts.Now})
	}
	if opts.Policy == nil {
		opts.Policy = app.SimplePolicy{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	reg := app.NewRegistry()
	out := app.NewOutbox(reg, opts.Policy)
	return &Orchestrator{
		Registry:  reg,
		Out:       out,
		Rooms:     opts.Rooms,
		Presence:  &app.PresenceNotifier{Out: out},
		Broadcast: &app.BroadcastRouter{Out: out, Now: opts.Now},
		Relay:     &app.SignalingRelay{Out: out},
		Mirror:    opts.Mirror,
		Limits:    opts.Limits,
		Now:       opts.Now,
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Connect registers a fresh transport connection.
func (o *Orchestrator) Connect(cid domain.ConnectionID, conn core.SignalConnection) {
	o.Registry.Register(cid, conn)
}

// WhoAmI reports the connection's current binding, if any.
func (o *Orchestrator) WhoAmI(cid domain.ConnectionID) (domain.ParticipantID, domain.RoomCode, bool) {
	return o.Registry.Resolve(cid)
}

// Reply sends an event to one connection outside any room.
func (o *Orchestrator) Reply(cid domain.ConnectionID, eventType string, data any) bool {
	return o.Out.Deliver(cid, eventType, data)
}

// Lookup backs the HTTP room lookup; it never mutates.
func (o *Orchestrator) Lookup(code domain.RoomCode) (core.RoomInfo, bool) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return core.RoomInfo{}, false
	}
	return room.Info(), true
}

// lockLive fetches and locks a room, treating a disposed room as missing.
// On success the caller must Unlock.
func (o *Orchestrator) lockLive(code domain.RoomCode) (*core.Room, error) {
	room, ok := o.Rooms.Get(code)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	room.Lock()
	if room.Disposed() {
		room.Unlock()
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

func (o *Orchestrator) publish(kind core.LifecycleKind, code domain.RoomCode, p *domain.Participant, msg *domain.Message) {
	ev := core.LifecycleEvent{Kind: kind, RoomCode: code, Message: msg, At: o.now()}
	if p != nil {
		ev.ParticipantID = p.ID
		ev.DisplayName = p.DisplayName
	}
	o.Mirror.Publish(ev)
}
