package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/domain"
)

func TestParseRoomCode(t *testing.T) {
	assert.Equal(t, domain.RoomCode("AB12CD"), domain.ParseRoomCode(" ab12cd "))
}

func TestRoomParticipants(t *testing.T) {
	r := &domain.Room{Code: "AB12CD"}
	a := domain.Participant{ID: "a", DisplayName: "Ann"}
	b := domain.Participant{ID: "b", DisplayName: "Bea"}

	require.True(t, r.AddParticipant(a))
	require.True(t, r.AddParticipant(b))
	assert.False(t, r.AddParticipant(a), "duplicate id must be rejected")
	require.Len(t, r.Participants, 2)
	assert.Equal(t, "Ann", r.Participants[0].DisplayName)
	assert.Equal(t, "Bea", r.Participants[1].DisplayName)

	got, ok := r.Participant("b")
	require.True(t, ok)
	assert.Equal(t, b, got)

	removed, ok := r.RemoveParticipant("a")
	require.True(t, ok)
	assert.Equal(t, a, removed)
	_, ok = r.RemoveParticipant("a")
	assert.False(t, ok)
	assert.Equal(t, []domain.Participant{b}, r.Participants)
}

func TestRoomCloneIsDeep(t *testing.T) {
	r := &domain.Room{Code: "AB12CD"}
	r.AddParticipant(domain.Participant{ID: "a"})
	r.AppendMessage(domain.NewSystemMessage("hello", time.Now()))

	c := r.Clone()
	r.AddParticipant(domain.Participant{ID: "b"})
	r.Messages[0].Body = "changed"

	assert.Len(t, c.Participants, 1)
	assert.Equal(t, "hello", c.Messages[0].Body)
}

func TestRoomCloneEmptySlices(t *testing.T) {
	r := &domain.Room{Code: "AB12CD"}
	c := r.Clone()
	assert.NotNil(t, c.Participants)
	assert.NotNil(t, c.Messages)
}
