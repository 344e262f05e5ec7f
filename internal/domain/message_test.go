package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/domain"
)

func TestNormalizeBody(t *testing.T) {
	got, err := domain.NormalizeBody("  hi  ", 10)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = domain.NormalizeBody(" \t", 10)
	assert.ErrorIs(t, err, domain.ErrMessageEmpty)

	_, err = domain.NormalizeBody(strings.Repeat("x", 11), 10)
	assert.ErrorIs(t, err, domain.ErrMessageTooLong)
}

func TestNewMessages(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := domain.NewUserMessage(domain.Participant{ID: "p1", DisplayName: "Bea"}, "hi", at)
	assert.Equal(t, domain.MessageKindUser, m.Kind)
	assert.Equal(t, domain.ParticipantID("p1"), m.SenderParticipantID)
	assert.Equal(t, "Bea", m.SenderDisplayName)
	assert.Equal(t, at, m.Timestamp)

	s := domain.NewSystemMessage("Bea left the room", at)
	assert.Equal(t, domain.MessageKindSystem, s.Kind)
	assert.Empty(t, s.SenderParticipantID)
}
