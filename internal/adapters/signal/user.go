package signal

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// handlePeerStatus forwards mute, speaking and quality updates unchanged.
func (ctl *SignalWSController) handlePeerStatus(cid domain.ConnectionID, eventType string, data json.RawMessage) {
	if len(data) > 0 && !json.Valid(data) {
		ctl.sendError(cid, eventType, errBadPayload)
		return
	}
	if err := ctl.Orch.PeerStatus(cid, eventType, data); err != nil {
		ctl.sendError(cid, eventType, err)
	}
}

func (ctl *SignalWSController) handleWhoAmI(cid domain.ConnectionID) {
	resp := core.WhoAmIEvent{ConnectionID: cid}
	if pid, code, ok := ctl.Orch.WhoAmI(cid); ok {
		resp.ParticipantID = pid
		resp.Code = code
	}
	ctl.sendEvent(cid, core.EventWhoAmI, resp)
}
