package core

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/domain"
)

// Event names on the realtime channel.
const (
	EventWelcome           = "welcome"
	EventCreateRoom        = "create-room"
	EventRoomCreated       = "room-created"
	EventJoinRoom          = "join-room"
	EventRoomJoined        = "room-joined"
	EventLeaveRoom         = "leave-room"
	EventRoomLeft          = "room-left"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventSendMessage       = "send-message"
	EventNewMessage        = "new-message"
	EventSignal            = "signal"
	EventMediaStatus       = "media-status"
	EventSpeakingStatus    = "speaking-status"
	EventQualityChanged    = "quality-changed"
	EventConnectionQuality = "connection-quality"
	EventPing              = "ping"
	EventPong              = "pong"
	EventWhoAmI            = "whoami"
	EventError             = "error"
)

// PeerStatusEvents are room-scoped, opaque status broadcasts that are not
// part of the message log.
var PeerStatusEvents = map[string]bool{
	EventMediaStatus:       true,
	EventSpeakingStatus:    true,
	EventQualityChanged:    true,
	EventConnectionQuality: true,
}

// Envelope is the JSON frame shape in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func Encode(eventType string, data any) (Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: eventType, Data: raw})
}

func Decode(f Frame) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(f, &env)
	return env, err
}

type WelcomeEvent struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
}

type RoomCreatedEvent struct {
	Code          domain.RoomCode      `json:"roomCode"`
	ParticipantID domain.ParticipantID `json:"participantId"`
}

type RoomLeftEvent struct {
	Code domain.RoomCode `json:"roomCode"`
}

// WhoAmIEvent answers whoami; room fields are empty when unbound.
type WhoAmIEvent struct {
	ConnectionID  domain.ConnectionID  `json:"connectionId"`
	ParticipantID domain.ParticipantID `json:"participantId,omitempty"`
	Code          domain.RoomCode      `json:"roomCode,omitempty"`
}

type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Event is the inbound event type that failed, when known.
	Event string `json:"event,omitempty"`
}

type ParticipantEvent struct {
	ParticipantID domain.ParticipantID `json:"participantId"`
	ConnectionID  domain.ConnectionID  `json:"connectionId"`
	DisplayName   string               `json:"displayName"`
}

func NewParticipantEvent(p domain.Participant) ParticipantEvent {
	return ParticipantEvent{ParticipantID: p.ID, ConnectionID: p.ConnectionID, DisplayName: p.DisplayName}
}

type SignalEvent struct {
	FromConnectionID domain.ConnectionID `json:"fromConnectionId"`
	Kind             domain.SignalKind   `json:"kind"`
	Payload          json.RawMessage     `json:"payload"`
}

type PeerStatusEvent struct {
	ConnectionID  domain.ConnectionID  `json:"connectionId"`
	ParticipantID domain.ParticipantID `json:"participantId"`
	Payload       json.RawMessage      `json:"payload,omitempty"`
}
