package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/app"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type fakeRepo struct {
	mu    sync.Mutex
	ops   []string
	rooms map[domain.RoomCode]domain.Room
	err   error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rooms: make(map[domain.RoomCode]domain.Room)} }

func (r *fakeRepo) Save(_ context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "save:"+string(room.Code))
	if r.err != nil {
		return r.err
	}
	r.rooms[room.Code] = room
	return nil
}

func (r *fakeRepo) FindByCode(_ context.Context, code domain.RoomCode) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

func (r *fakeRepo) Delete(_ context.Context, code domain.RoomCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "delete:"+string(code))
	delete(r.rooms, code)
	return r.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []core.LifecycleEvent
}

func (p *fakePublisher) Publish(_ context.Context, ev core.LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func TestMirrorAppliesInOrder(t *testing.T) {
	repo := newFakeRepo()
	pub := &fakePublisher{}
	m := app.NewMirror(repo, pub, 16)

	room := &domain.Room{Code: "AB12CD"}
	room.AddParticipant(domain.Participant{ID: "p1"})
	m.SaveRoom(room)
	room.AddParticipant(domain.Participant{ID: "p2"})
	m.Publish(core.LifecycleEvent{Kind: core.LifecycleParticipantJoined, RoomCode: "AB12CD"})
	m.DeleteRoom("AB12CD")
	m.Close()

	assert.Equal(t, []string{"save:AB12CD", "delete:AB12CD"}, repo.ops)
	require.Len(t, pub.events, 1)
	assert.Equal(t, core.LifecycleParticipantJoined, pub.events[0].Kind)
}

func TestMirrorSnapshotsRoom(t *testing.T) {
	repo := newFakeRepo()
	m := app.NewMirror(repo, nil, 16)

	room := &domain.Room{Code: "AB12CD"}
	room.AddParticipant(domain.Participant{ID: "p1"})
	m.SaveRoom(room)
	room.AddParticipant(domain.Participant{ID: "p2"})
	m.Close()

	saved, err := repo.FindByCode(context.Background(), "AB12CD")
	require.NoError(t, err)
	assert.Len(t, saved.Participants, 1)
}

func TestMirrorSwallowsErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("db down")
	m := app.NewMirror(repo, nil, 4)
	m.SaveRoom(&domain.Room{Code: "AB12CD"})
	m.Close()
	assert.Equal(t, []string{"save:AB12CD"}, repo.ops)
}

func TestMirrorNilAndClosedAreSafe(t *testing.T) {
	var nilMirror *app.Mirror
	nilMirror.SaveRoom(&domain.Room{Code: "X"})
	nilMirror.Publish(core.LifecycleEvent{})
	nilMirror.Close()

	repo := newFakeRepo()
	m := app.NewMirror(repo, nil, 4)
	m.Close()
	m.Close()
	m.SaveRoom(&domain.Room{Code: "AB12CD"})
	assert.Empty(t, repo.ops)
}
