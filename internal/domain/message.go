package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const DefaultMaxMessageLen = 2000

type MessageKind string

const (
	MessageKindUser   MessageKind = "user"
	MessageKindSystem MessageKind = "system"
)

// Message is ordered by arrival at the relay, not by client send time.
type Message struct {
	SenderParticipantID ParticipantID `json:"senderParticipantId,omitempty"`
	SenderDisplayName   string        `json:"senderDisplayName"`
	Body                string        `json:"body"`
	Kind                MessageKind   `json:"kind"`
	Timestamp           time.Time     `json:"timestamp"`
}

func NewUserMessage(sender Participant, body string, at time.Time) Message {
	return Message{
		SenderParticipantID: sender.ID,
		SenderDisplayName:   sender.DisplayName,
		Body:                body,
		Kind:                MessageKindUser,
		Timestamp:           at,
	}
}

func NewSystemMessage(body string, at time.Time) Message {
	return Message{
		SenderDisplayName: "system",
		Body:              body,
		Kind:              MessageKindSystem,
		Timestamp:         at,
	}
}

func NormalizeBody(body string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLen
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrMessageEmpty
	}
	if utf8.RuneCountInString(body) > maxLen {
		return "", ErrMessageTooLong
	}
	return body, nil
}
