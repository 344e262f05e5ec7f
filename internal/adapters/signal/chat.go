package signal

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// handleSendMessage posts a chat message. The sender is whoever owns the
// connection; the echo comes back as new-message like everyone else's.
func (ctl *SignalWSController) handleSendMessage(cid domain.ConnectionID, data json.RawMessage) {
	var p struct {
		Body string `json:"body"`
	}
	if err := decodeData(data, &p); err != nil {
		ctl.sendError(cid, core.EventSendMessage, errBadPayload)
		return
	}
	if _, err := ctl.Orch.PostMessage(cid, p.Body); err != nil {
		ctl.sendError(cid, core.EventSendMessage, err)
	}
}
