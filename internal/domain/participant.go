// Package domain contains entities without transport logic, just meta-data
// and the small amount of validation that belongs to them.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const DefaultMaxDisplayNameLen = 36

type (
	ParticipantID string
	ConnectionID  string
)

// Participant is a named member of a room, bound to exactly one live connection.
type Participant struct {
	ID           ParticipantID `json:"participantId"`
	ConnectionID ConnectionID  `json:"connectionId"`
	DisplayName  string        `json:"displayName"`
	JoinedAt     time.Time     `json:"joinedAt"`
}

func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.NewString())
}

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}

// NormalizeDisplayName trims the name and checks it against maxLen runes.
// maxLen <= 0 falls back to DefaultMaxDisplayNameLen.
func NormalizeDisplayName(name string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxDisplayNameLen
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrDisplayNameEmpty
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}
