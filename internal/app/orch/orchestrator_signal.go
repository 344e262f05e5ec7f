package orch

import (
	"errors"

	"github.com/dkeye/Huddle/internal/domain"
)

// Signal relays a negotiation envelope from cid. The client-supplied sender
// is ignored. A target that is gone is dropped without telling the sender,
// so the only errors returned are shape errors.
func (o *Orchestrator) Signal(cid domain.ConnectionID, env domain.SignalEnvelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	err := o.Relay.Relay(cid, env)
	if errors.Is(err, domain.ErrTargetNotConnected) {
		return nil
	}
	return err
}
