package orch

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// PeerStatus forwards a media, speaking or quality update from cid to the
// other participants of its room. The payload is opaque.
func (o *Orchestrator) PeerStatus(cid domain.ConnectionID, eventType string, payload json.RawMessage) error {
	if !core.PeerStatusEvents[eventType] {
		return fmt.Errorf("unsupported status event %q", eventType)
	}
	pid, code, ok := o.Registry.Resolve(cid)
	if !ok {
		return domain.ErrSenderNotInRoom
	}
	room, err := o.lockLive(code)
	if err != nil {
		return err
	}
	defer room.Unlock()

	agg := room.Aggregate()
	sender, ok := agg.Participant(pid)
	if !ok {
		return domain.ErrSenderNotInRoom
	}
	o.Broadcast.Announce(agg, sender, eventType, payload)
	return nil
}
