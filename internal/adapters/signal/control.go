package signal

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

func (ctl *SignalWSController) handlePing(cid domain.ConnectionID) {
	ctl.sendEvent(cid, core.EventPong, struct{}{})
}
