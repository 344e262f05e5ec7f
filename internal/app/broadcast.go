package app

import (
	"encoding/json"
	"time"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// BroadcastRouter appends chat messages to a room's log and fans them out.
// Callers hold the room lock, so every recipient sees append order.
type BroadcastRouter struct {
	Out *Outbox
	Now func() time.Time
}

func (b *BroadcastRouter) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Post appends a user message and delivers it to every participant,
// the sender included.
func (b *BroadcastRouter) Post(room *domain.Room, sender domain.Participant, body string) domain.Message {
	msg := domain.NewUserMessage(sender, body, b.now())
	room.AppendMessage(msg)
	b.Out.Fanout(room.Participants, "", core.EventNewMessage, msg)
	return msg
}

// PostSystem appends a system message; there is no sender to resolve.
func (b *BroadcastRouter) PostSystem(room *domain.Room, body string) domain.Message {
	msg := domain.NewSystemMessage(body, b.now())
	room.AppendMessage(msg)
	b.Out.Fanout(room.Participants, "", core.EventNewMessage, msg)
	return msg
}

// Announce forwards an opaque status update from sender to the other
// participants. Nothing is logged in the room.
func (b *BroadcastRouter) Announce(room *domain.Room, sender domain.Participant, eventType string, payload json.RawMessage) int {
	return b.Out.Fanout(room.Participants, sender.ConnectionID, eventType, core.PeerStatusEvent{
		ConnectionID:  sender.ConnectionID,
		ParticipantID: sender.ID,
		Payload:       payload,
	})
}
