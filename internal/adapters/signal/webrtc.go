package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// handleRelay forwards offer, answer and candidate envelopes between peers.
// SDP and ICE payloads are passed through untouched; the server never
// terminates media.
func (ctl *SignalWSController) handleRelay(cid domain.ConnectionID, data json.RawMessage) {
	var env domain.SignalEnvelope
	if err := decodeData(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad signal payload")
		ctl.sendError(cid, core.EventSignal, errBadPayload)
		return
	}
	if err := ctl.Orch.Signal(cid, env); err != nil {
		ctl.sendError(cid, core.EventSignal, err)
	}
}
