package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Outbox delivers encoded events to registered connections. Deliveries are
// fire-and-forget: a failed send is handed to the Policy and never blocks.
type Outbox struct {
	Registry *Registry
	Policy   Policy
}

func NewOutbox(reg *Registry, policy Policy) *Outbox {
	return &Outbox{Registry: reg, Policy: policy}
}

// Deliver sends one event to one connection and reports whether it was accepted.
func (o *Outbox) Deliver(to domain.ConnectionID, eventType string, data any) bool {
	frame, err := core.Encode(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.outbox").Str("event", eventType).Msg("encode event")
		return false
	}
	return o.deliverFrame(to, eventType, frame)
}

// Fanout sends one event to every participant except the given connection.
// It returns the number of accepted deliveries.
func (o *Outbox) Fanout(recipients []domain.Participant, except domain.ConnectionID, eventType string, data any) int {
	frame, err := core.Encode(eventType, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.outbox").Str("event", eventType).Msg("encode event")
		return 0
	}
	sent := 0
	for _, p := range recipients {
		if p.ConnectionID == except {
			continue
		}
		if o.deliverFrame(p.ConnectionID, eventType, frame) {
			sent++
		}
	}
	log.Debug().Str("module", "app.outbox").Str("event", eventType).Int("sent_to", sent).Msg("fanout result")
	return sent
}

func (o *Outbox) deliverFrame(to domain.ConnectionID, eventType string, frame core.Frame) bool {
	conn, ok := o.Registry.Connection(to)
	if !ok {
		log.Debug().Str("module", "app.outbox").Str("conn", string(to)).Str("event", eventType).Msg("recipient not connected")
		return false
	}
	err := conn.TrySend(frame)
	if err == nil {
		return true
	}
	log.Warn().Err(err).Str("module", "app.outbox").Str("conn", string(to)).Str("event", eventType).Msg("delivery failed")
	if o.Policy != nil && o.Policy.OnBackPressure(to, err) == KickMember {
		log.Warn().Str("module", "app.outbox").Str("conn", string(to)).Msg("kicking slow connection")
		conn.Close()
	}
	return false
}
