package orch

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// CreateRoom allocates a room in the Forming state. The host becomes a
// member through Join like anyone else; the first join adopts the reserved
// host participant id.
func (o *Orchestrator) CreateRoom(hostDisplayName string) (domain.RoomCode, domain.ParticipantID, error) {
	name, err := domain.NormalizeDisplayName(hostDisplayName, o.Limits.MaxDisplayName)
	if err != nil {
		return "", "", err
	}
	room, err := o.Rooms.Create(name)
	if err != nil {
		return "", "", err
	}
	defer room.Unlock()
	agg := room.Aggregate()
	o.Mirror.SaveRoom(agg)
	o.publish(core.LifecycleRoomCreated, agg.Code, nil, nil)
	return agg.Code, agg.HostParticipantID, nil
}

// CreateAndJoin creates a room and joins cid as its host before the room
// lock is released, so no other joiner can observe it Forming. The caller
// receives room-created followed by room-joined.
func (o *Orchestrator) CreateAndJoin(cid domain.ConnectionID, hostDisplayName string) (core.RoomSnapshot, error) {
	name, err := domain.NormalizeDisplayName(hostDisplayName, o.Limits.MaxDisplayName)
	if err != nil {
		return core.RoomSnapshot{}, err
	}
	if _, _, bound := o.Registry.Resolve(cid); bound {
		return core.RoomSnapshot{}, domain.ErrDuplicateJoinAttempt
	}
	room, err := o.Rooms.Create(name)
	if err != nil {
		return core.RoomSnapshot{}, err
	}
	defer room.Unlock()

	code := room.Code()
	o.publish(core.LifecycleRoomCreated, code, nil, nil)
	o.Out.Deliver(cid, core.EventRoomCreated, core.RoomCreatedEvent{Code: code, ParticipantID: room.Aggregate().HostParticipantID})
	snap, err := o.joinLocked(room, cid, name)
	if err != nil {
		room.MarkDisposed()
		o.Rooms.Delete(code)
		o.publish(core.LifecycleRoomDisposed, code, nil, nil)
		return core.RoomSnapshot{}, err
	}
	return snap, nil
}

// Join adds cid to the room as a new participant. The snapshot lists the
// participants and messages that were there before the join; it is also
// delivered to cid as room-joined ahead of any later room traffic.
func (o *Orchestrator) Join(code domain.RoomCode, cid domain.ConnectionID, displayName string) (core.RoomSnapshot, error) {
	name, err := domain.NormalizeDisplayName(displayName, o.Limits.MaxDisplayName)
	if err != nil {
		return core.RoomSnapshot{}, err
	}
	if _, _, bound := o.Registry.Resolve(cid); bound {
		return core.RoomSnapshot{}, domain.ErrDuplicateJoinAttempt
	}
	room, err := o.lockLive(code)
	if err != nil {
		return core.RoomSnapshot{}, err
	}
	defer room.Unlock()
	return o.joinLocked(room, cid, name)
}

func (o *Orchestrator) joinLocked(room *core.Room, cid domain.ConnectionID, name string) (core.RoomSnapshot, error) {
	agg := room.Aggregate()

	pid := domain.NewParticipantID()
	if room.State() == core.RoomForming {
		pid = agg.HostParticipantID
	}
	if err := o.Registry.Bind(cid, pid, agg.Code); err != nil {
		return core.RoomSnapshot{}, err
	}

	before := agg.Clone()
	p := domain.Participant{ID: pid, ConnectionID: cid, DisplayName: name, JoinedAt: o.now()}
	if !agg.AddParticipant(p) {
		o.Registry.Unbind(cid)
		return core.RoomSnapshot{}, fmt.Errorf("participant %s already in room %s", pid, agg.Code)
	}
	room.MarkActive()

	snap := core.RoomSnapshot{
		Code:              agg.Code,
		ParticipantID:     pid,
		HostParticipantID: agg.HostParticipantID,
		Participants:      before.Participants,
		Messages:          before.Messages,
	}
	o.Out.Deliver(cid, core.EventRoomJoined, snap)
	o.Presence.NotifyJoined(agg, p)
	o.Mirror.SaveRoom(agg)
	o.publish(core.LifecycleParticipantJoined, agg.Code, &p, nil)

	log.Info().Str("module", "orch").Str("room", string(agg.Code)).Str("conn", string(cid)).Str("participant", string(pid)).Int("count", len(agg.Participants)).Msg("participant joined")
	return snap, nil
}

// Leave is the explicit departure. It reports whether anything was removed.
func (o *Orchestrator) Leave(cid domain.ConnectionID) bool {
	pid, code, ok := o.Registry.Resolve(cid)
	if !ok {
		return false
	}
	removed := o.RemoveParticipant(code, pid)
	// A binding to a room that is already gone is stale; drop it.
	o.Registry.Unbind(cid)
	return removed
}

// OnDisconnect handles a transport drop. It tolerates running after an
// explicit Leave for the same connection. A disconnect is not an error.
func (o *Orchestrator) OnDisconnect(cid domain.ConnectionID) {
	o.Leave(cid)
	o.Registry.Unregister(cid)
	log.Info().Str("module", "orch").Str("conn", string(cid)).Msg("connection closed")
}

// RemoveParticipant is idempotent: removing an absent participant, or from a
// room that no longer exists, is a silent no-op.
func (o *Orchestrator) RemoveParticipant(code domain.RoomCode, pid domain.ParticipantID) bool {
	room, err := o.lockLive(code)
	if err != nil {
		return false
	}
	defer room.Unlock()
	return o.removeLocked(room, pid)
}

func (o *Orchestrator) removeLocked(room *core.Room, pid domain.ParticipantID) bool {
	agg := room.Aggregate()
	departed, ok := agg.RemoveParticipant(pid)
	if !ok {
		return false
	}
	o.Registry.Unbind(departed.ConnectionID)
	o.publish(core.LifecycleParticipantLeft, agg.Code, &departed, nil)

	logger := log.With().Str("module", "orch").Str("room", string(agg.Code)).Str("participant", string(pid)).Logger()

	if len(agg.Participants) == 0 {
		room.MarkDisposed()
		o.Rooms.Delete(agg.Code)
		o.Mirror.DeleteRoom(agg.Code)
		o.publish(core.LifecycleRoomDisposed, agg.Code, nil, nil)
		logger.Info().Msg("last participant left, room disposed")
		return true
	}

	o.Presence.NotifyLeft(agg, departed)
	msg := o.Broadcast.PostSystem(agg, fmt.Sprintf("%s left the room", departed.DisplayName))
	o.Mirror.SaveRoom(agg)
	o.publish(core.LifecycleMessagePosted, agg.Code, nil, &msg)
	logger.Info().Int("count", len(agg.Participants)).Msg("participant left")
	return true
}
