package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/dkeye/Huddle/internal/testutils"
)

type deliveryFixture struct {
	reg   *app.Registry
	out   *app.Outbox
	conns map[domain.ConnectionID]*testutils.RecordingConn
	room  *domain.Room
}

func newDeliveryFixture(names ...string) *deliveryFixture {
	f := &deliveryFixture{
		reg:   app.NewRegistry(),
		conns: make(map[domain.ConnectionID]*testutils.RecordingConn),
		room:  &domain.Room{Code: "AB12CD"},
	}
	f.out = app.NewOutbox(f.reg, app.SimplePolicy{})
	for _, n := range names {
		cid := domain.ConnectionID("conn-" + n)
		conn := testutils.NewRecordingConn()
		f.reg.Register(cid, conn)
		f.conns[cid] = conn
		f.room.AddParticipant(domain.Participant{ID: domain.ParticipantID("p-" + n), ConnectionID: cid, DisplayName: n})
	}
	return f
}

func (f *deliveryFixture) conn(name string) *testutils.RecordingConn {
	return f.conns[domain.ConnectionID("conn-"+name)]
}

func TestPresenceNotifier(t *testing.T) {
	f := newDeliveryFixture("Ann", "Cid", "Bea")
	p := &app.PresenceNotifier{Out: f.out}
	bea := f.room.Participants[2]

	assert.Equal(t, 2, p.NotifyJoined(f.room, bea))
	assert.Empty(t, f.conn("Bea").Types(t), "joiner is not told about itself")
	joined := testutils.OfType[core.ParticipantEvent](t, f.conn("Ann"), core.EventParticipantJoined)
	require.Len(t, joined, 1)
	assert.Equal(t, "Bea", joined[0].DisplayName)
	assert.Equal(t, bea.ConnectionID, joined[0].ConnectionID)

	f.room.RemoveParticipant(bea.ID)
	assert.Equal(t, 2, p.NotifyLeft(f.room, bea))
	left := testutils.OfType[core.ParticipantEvent](t, f.conn("Cid"), core.EventParticipantLeft)
	require.Len(t, left, 1)
	assert.Equal(t, bea.ID, left[0].ParticipantID)
}

func TestBroadcastRouterIncludesSender(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	b := &app.BroadcastRouter{Out: f.out}
	bea := f.room.Participants[1]

	msg := b.Post(f.room, bea, "hi")
	assert.Equal(t, domain.MessageKindUser, msg.Kind)
	require.Len(t, f.room.Messages, 1)

	for _, name := range []string{"Ann", "Bea"} {
		got := testutils.OfType[domain.Message](t, f.conn(name), core.EventNewMessage)
		require.Len(t, got, 1, name)
		assert.Equal(t, "Bea", got[0].SenderDisplayName)
		assert.Equal(t, "hi", got[0].Body)
	}
}

func TestBroadcastRouterPreservesOrder(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	b := &app.BroadcastRouter{Out: f.out}
	ann, bea := f.room.Participants[0], f.room.Participants[1]

	b.Post(f.room, ann, "one")
	b.Post(f.room, bea, "two")
	b.PostSystem(f.room, "three")

	for _, name := range []string{"Ann", "Bea"} {
		got := testutils.OfType[domain.Message](t, f.conn(name), core.EventNewMessage)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"one", "two", "three"}, []string{got[0].Body, got[1].Body, got[2].Body})
		assert.Equal(t, domain.MessageKindSystem, got[2].Kind)
	}
}

func TestBroadcastRouterAnnounce(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	b := &app.BroadcastRouter{Out: f.out}
	ann := f.room.Participants[0]

	n := b.Announce(f.room, ann, core.EventSpeakingStatus, json.RawMessage(`{"speaking":true}`))
	assert.Equal(t, 1, n)
	assert.Empty(t, f.conn("Ann").Types(t))
	assert.Empty(t, f.room.Messages)

	got := testutils.OfType[core.PeerStatusEvent](t, f.conn("Bea"), core.EventSpeakingStatus)
	require.Len(t, got, 1)
	assert.Equal(t, ann.ConnectionID, got[0].ConnectionID)
	assert.JSONEq(t, `{"speaking":true}`, string(got[0].Payload))
}

func TestSignalingRelay(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	r := &app.SignalingRelay{Out: f.out}

	err := r.Relay("conn-Ann", domain.SignalEnvelope{
		From:    "conn-forged",
		To:      "conn-Bea",
		Kind:    domain.SignalOffer,
		Payload: json.RawMessage(`{"sdp":"v=0"}`),
	})
	require.NoError(t, err)

	got := testutils.OfType[core.SignalEvent](t, f.conn("Bea"), core.EventSignal)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ConnectionID("conn-Ann"), got[0].FromConnectionID, "sender is stamped server-side")
	assert.Equal(t, domain.SignalOffer, got[0].Kind)
	assert.JSONEq(t, `{"sdp":"v=0"}`, string(got[0].Payload))
	assert.Empty(t, f.conn("Ann").Types(t))
}

func TestSignalingRelayTargetGone(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	r := &app.SignalingRelay{Out: f.out}
	f.reg.Unregister("conn-Bea")

	err := r.Relay("conn-Ann", domain.SignalEnvelope{To: "conn-Bea", Kind: domain.SignalCandidate, Payload: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, domain.ErrTargetNotConnected)
	assert.Empty(t, f.conn("Ann").Types(t))
	assert.Empty(t, f.conn("Bea").Types(t))
}

func TestOutboxKicksSlowConnection(t *testing.T) {
	f := newDeliveryFixture("Ann", "Bea")
	f.conn("Bea").FailWith(core.ErrBackpressure)

	sent := f.out.Fanout(f.room.Participants, "", core.EventNewMessage, domain.Message{Body: "x"})
	assert.Equal(t, 1, sent)
	assert.True(t, f.conn("Bea").Closed())
	assert.False(t, f.conn("Ann").Closed())
}

func TestSimplePolicy(t *testing.T) {
	p := app.SimplePolicy{}
	assert.Equal(t, app.KickMember, p.OnBackPressure("c", core.ErrBackpressure))
	assert.Equal(t, app.DropFrame, p.OnBackPressure("c", core.ErrConnectionClosed))
}
