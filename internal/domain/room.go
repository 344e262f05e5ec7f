package domain

import (
	"slices"
	"strings"
	"time"
)

type RoomCode string

// ParseRoomCode normalizes user input: codes are case-insensitive on the wire.
func ParseRoomCode(s string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(s)))
}

// Room is the canonical room aggregate. Participants keep join order and
// Messages is append-only. Concurrency control lives in core.Room.
type Room struct {
	Code              RoomCode      `json:"code"`
	HostParticipantID ParticipantID `json:"hostParticipantId"`
	HostDisplayName   string        `json:"hostDisplayName"`
	Participants      []Participant `json:"participants"`
	Messages          []Message     `json:"messages"`
	CreatedAt         time.Time     `json:"createdAt"`
}

func (r *Room) indexOf(id ParticipantID) int {
	return slices.IndexFunc(r.Participants, func(p Participant) bool { return p.ID == id })
}

func (r *Room) Participant(id ParticipantID) (Participant, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Participant{}, false
	}
	return r.Participants[i], true
}

// AddParticipant appends p unless a participant with the same id is present.
func (r *Room) AddParticipant(p Participant) bool {
	if r.indexOf(p.ID) >= 0 {
		return false
	}
	r.Participants = append(r.Participants, p)
	return true
}

// RemoveParticipant removes the participant and reports whether it was present.
func (r *Room) RemoveParticipant(id ParticipantID) (Participant, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return Participant{}, false
	}
	p := r.Participants[i]
	r.Participants = slices.Delete(r.Participants, i, i+1)
	return p, true
}

func (r *Room) AppendMessage(m Message) {
	r.Messages = append(r.Messages, m)
}

// Clone returns a deep copy safe to hand to another goroutine.
func (r *Room) Clone() Room {
	out := *r
	out.Participants = slices.Clone(r.Participants)
	out.Messages = slices.Clone(r.Messages)
	if out.Participants == nil {
		out.Participants = []Participant{}
	}
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	return out
}
