package app

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

const (
	DefaultCodeLength      = 6
	DefaultCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeMaxAttempts = 16
)

// CodeGenerator produces candidate room codes; uniqueness is checked by the manager.
type CodeGenerator func() (domain.RoomCode, error)

// RandomCodes returns a generator of fixed-length codes drawn from alphabet.
func RandomCodes(length int, alphabet string) CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if alphabet == "" {
		alphabet = DefaultCodeAlphabet
	}
	max := big.NewInt(int64(len(alphabet)))
	return func() (domain.RoomCode, error) {
		b := make([]byte, length)
		for i := range b {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", err
			}
			b[i] = alphabet[n.Int64()]
		}
		return domain.RoomCode(b), nil
	}
}

type RoomManagerConfig struct {
	Generate    CodeGenerator
	MaxAttempts int
	Now         func() time.Time
}

// RoomManager is the room store: code -> room for the process lifetime.
type RoomManager struct {
	mu          sync.RWMutex
	rooms       map[domain.RoomCode]*core.Room
	generate    CodeGenerator
	maxAttempts int
	now         func() time.Time
}

func NewRoomManager(cfg RoomManagerConfig) *RoomManager {
	if cfg.Generate == nil {
		cfg.Generate = RandomCodes(DefaultCodeLength, DefaultCodeAlphabet)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultCodeMaxAttempts
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &RoomManager{
		rooms:       make(map[domain.RoomCode]*core.Room),
		generate:    cfg.Generate,
		maxAttempts: cfg.MaxAttempts,
		now:         cfg.Now,
	}
}

// Create allocates a room under a code unused among live rooms. Generation,
// the uniqueness check and the insert happen under one write lock.
//
// The returned room is already locked so the caller can finish the host's
// join before anyone else observes it; the caller must Unlock it.
func (m *RoomManager) Create(hostDisplayName string) (*core.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		code, err := m.generate()
		if err != nil {
			return nil, fmt.Errorf("generate room code: %w", err)
		}
		if _, taken := m.rooms[code]; taken {
			log.Debug().Str("module", "app.rooms").Str("room", string(code)).Int("attempt", attempt).Msg("room code collision")
			continue
		}
		room := core.NewRoom(&domain.Room{
			Code:              code,
			HostParticipantID: domain.NewParticipantID(),
			HostDisplayName:   hostDisplayName,
			Participants:      []domain.Participant{},
			Messages:          []domain.Message{},
			CreatedAt:         m.now(),
		})
		room.Lock()
		m.rooms[code] = room
		log.Info().Str("module", "app.rooms").Str("room", string(code)).Str("host", hostDisplayName).Msg("room created")
		return room, nil
	}
	log.Error().Str("module", "app.rooms").Int("attempts", m.maxAttempts).Msg("room code generation exhausted")
	return nil, domain.ErrRoomCodeGenerationExhausted
}

func (m *RoomManager) Get(code domain.RoomCode) (*core.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[code]
	return room, ok
}

func (m *RoomManager) Delete(code domain.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[code]; !ok {
		return
	}
	delete(m.rooms, code)
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room deleted")
}

// List must not hold the store lock while taking room locks: the lifecycle
// path holds a room lock when it calls Delete.
func (m *RoomManager) List() []core.RoomInfo {
	m.mu.RLock()
	rooms := make([]*core.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	out := make([]core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	return out
}

func (m *RoomManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
