package app

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// PresenceNotifier tells room members about arrivals and departures.
// It only delivers; room state belongs to the lifecycle manager.
type PresenceNotifier struct {
	Out *Outbox
}

// NotifyJoined goes to everyone in the room except the new participant.
func (p *PresenceNotifier) NotifyJoined(room *domain.Room, joined domain.Participant) int {
	return p.Out.Fanout(room.Participants, joined.ConnectionID, core.EventParticipantJoined, core.NewParticipantEvent(joined))
}

// NotifyLeft goes to the remaining participants; call it after removal.
func (p *PresenceNotifier) NotifyLeft(room *domain.Room, departed domain.Participant) int {
	return p.Out.Fanout(room.Participants, departed.ConnectionID, core.EventParticipantLeft, core.NewParticipantEvent(departed))
}
