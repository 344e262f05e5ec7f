package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// SignalingRelay forwards negotiation payloads point to point. It looks the
// target up by connection, not by room, and never reads the payload.
type SignalingRelay struct {
	Out *Outbox
}

// Relay stamps the authoritative sender and forwards env to env.To.
// A vanished target yields ErrTargetNotConnected, which callers drop silently.
func (s *SignalingRelay) Relay(from domain.ConnectionID, env domain.SignalEnvelope) error {
	env.From = from
	if _, ok := s.Out.Registry.Connection(env.To); !ok {
		log.Debug().Str("module", "app.relay").Str("from", string(from)).Str("to", string(env.To)).Str("kind", string(env.Kind)).Msg("signal target gone, dropping")
		return domain.ErrTargetNotConnected
	}
	s.Out.Deliver(env.To, core.EventSignal, core.SignalEvent{
		FromConnectionID: env.From,
		Kind:             env.Kind,
		Payload:          env.Payload,
	})
	log.Debug().Str("module", "app.relay").Str("from", string(from)).Str("to", string(env.To)).Str("kind", string(env.Kind)).Msg("signal relayed")
	return nil
}
