package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/testutils"
)

func TestRegistryBindResolveUnbind(t *testing.T) {
	reg := app.NewRegistry()
	conn := testutils.NewRecordingConn()
	reg.Register("c1", conn)

	_, _, ok := reg.Resolve("c1")
	assert.False(t, ok, "registered but unbound connection resolves to nothing")

	require.NoError(t, reg.Bind("c1", "p1", "AB12CD"))
	pid, code, ok := reg.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, domain.ParticipantID("p1"), pid)
	assert.Equal(t, domain.RoomCode("AB12CD"), code)

	err := reg.Bind("c1", "p2", "ZZ99ZZ")
	assert.ErrorIs(t, err, domain.ErrDuplicateJoinAttempt)

	reg.Unbind("c1")
	reg.Unbind("c1")
	_, _, ok = reg.Resolve("c1")
	assert.False(t, ok)

	got, ok := reg.Connection("c1")
	require.True(t, ok, "unbind keeps the connection registered")
	assert.Same(t, conn, got)

	require.NoError(t, reg.Bind("c1", "p3", "ZZ99ZZ"), "rebinding after unbind is allowed")
}

func TestRegistryUnknownConnection(t *testing.T) {
	reg := app.NewRegistry()
	assert.ErrorIs(t, reg.Bind("ghost", "p1", "AB12CD"), domain.ErrConnectionNotRegistered)
	reg.Unbind("ghost")
	reg.Unregister("ghost")
	_, ok := reg.Connection("ghost")
	assert.False(t, ok)
}

func TestRegistryUnregister(t *testing.T) {
	reg := app.NewRegistry()
	reg.Register("c1", testutils.NewRecordingConn())
	reg.Register("c2", testutils.NewRecordingConn())
	require.NoError(t, reg.Bind("c1", "p1", "AB12CD"))
	assert.Equal(t, 2, reg.Count())

	reg.Unregister("c1")
	assert.Equal(t, 1, reg.Count())
	_, _, ok := reg.Resolve("c1")
	assert.False(t, ok)
}
