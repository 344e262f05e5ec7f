package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type connEntry struct {
	Conn        core.SignalConnection
	Participant domain.ParticipantID
	Room        domain.RoomCode
}

// Registry is the connection directory: the only place that knows
// which participant and room a live connection belongs to.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnectionID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnectionID]*connEntry)}
}

func (r *Registry) Register(cid domain.ConnectionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[cid] = &connEntry{Conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Msg("registered connection")
}

func (r *Registry) Unregister(cid domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[cid]; !ok {
		return
	}
	delete(r.conns, cid)
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Msg("unregistered connection")
}

// Bind attaches a registered connection to a participant in a room.
// A connection is bound to at most one room; rebinding is rejected.
func (r *Registry) Bind(cid domain.ConnectionID, pid domain.ParticipantID, code domain.RoomCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[cid]
	if !ok {
		return domain.ErrConnectionNotRegistered
	}
	if e.Room != "" {
		return domain.ErrDuplicateJoinAttempt
	}
	e.Participant = pid
	e.Room = code
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Str("participant", string(pid)).Str("room", string(code)).Msg("bound connection")
	return nil
}

func (r *Registry) Resolve(cid domain.ConnectionID) (domain.ParticipantID, domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok || e.Room == "" {
		return "", "", false
	}
	return e.Participant, e.Room, true
}

// Unbind drops the room association. Unbinding an unbound or unknown
// connection is a no-op.
func (r *Registry) Unbind(cid domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[cid]
	if !ok || e.Room == "" {
		return
	}
	e.Participant = ""
	e.Room = ""
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Msg("unbound connection")
}

func (r *Registry) Connection(cid domain.ConnectionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[cid]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
