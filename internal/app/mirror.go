package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

const (
	DefaultMirrorQueue   = 1024
	DefaultMirrorTimeout = 3 * time.Second
)

type mirrorOp int

const (
	opSave mirrorOp = iota
	opDelete
	opPublish
)

type mirrorJob struct {
	op    mirrorOp
	room  domain.Room
	code  domain.RoomCode
	event core.LifecycleEvent
}

// Mirror copies room state to the repository and lifecycle events to the
// publisher from a single worker, in submission order. It never blocks the
// caller: when the queue is full the job is dropped. Failures are logged
// and swallowed. A nil *Mirror is a valid no-op.
type Mirror struct {
	repo    core.RoomRepository
	pub     core.EventPublisher
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan mirrorJob
	done   chan struct{}
}

// NewMirror starts the worker. repo and pub may each be nil.
func NewMirror(repo core.RoomRepository, pub core.EventPublisher, queueSize int) *Mirror {
	if queueSize <= 0 {
		queueSize = DefaultMirrorQueue
	}
	m := &Mirror{
		repo:    repo,
		pub:     pub,
		timeout: DefaultMirrorTimeout,
		jobs:    make(chan mirrorJob, queueSize),
		done:    make(chan struct{}),
	}
	go m.run()
	return m
}

// SaveRoom takes a deep copy, so callers may keep mutating room afterwards.
func (m *Mirror) SaveRoom(room *domain.Room) {
	if m == nil || m.repo == nil {
		return
	}
	m.enqueue(mirrorJob{op: opSave, room: room.Clone(), code: room.Code})
}

func (m *Mirror) DeleteRoom(code domain.RoomCode) {
	if m == nil || m.repo == nil {
		return
	}
	m.enqueue(mirrorJob{op: opDelete, code: code})
}

func (m *Mirror) Publish(ev core.LifecycleEvent) {
	if m == nil || m.pub == nil {
		return
	}
	m.enqueue(mirrorJob{op: opPublish, code: ev.RoomCode, event: ev})
}

func (m *Mirror) enqueue(job mirrorJob) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return
	}
	select {
	case m.jobs <- job:
	default:
		log.Warn().Str("module", "app.mirror").Str("room", string(job.code)).Int("op", int(job.op)).Msg("mirror queue full, dropping job")
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for job := range m.jobs {
		m.apply(job)
	}
}

func (m *Mirror) apply(job mirrorJob) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var err error
	switch job.op {
	case opSave:
		err = m.repo.Save(ctx, job.room)
	case opDelete:
		err = m.repo.Delete(ctx, job.code)
	case opPublish:
		err = m.pub.Publish(ctx, job.event)
	}
	if err != nil {
		log.Error().Err(err).Str("module", "app.mirror").Str("room", string(job.code)).Int("op", int(job.op)).Msg("mirror write failed")
	}
}

// Close drains pending jobs and stops the worker.
func (m *Mirror) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.jobs)
	m.mu.Unlock()
	<-m.done
}
