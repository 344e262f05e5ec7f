package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// handleCreateRoom creates a room and joins the caller as host. The
// orchestrator delivers room-created and room-joined itself.
func (ctl *SignalWSController) handleCreateRoom(cid domain.ConnectionID, data json.RawMessage) {
	var p struct {
		HostDisplayName string `json:"hostDisplayName"`
	}
	if err := decodeData(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad create payload")
		ctl.sendError(cid, core.EventCreateRoom, errBadPayload)
		return
	}
	snap, err := ctl.Orch.CreateAndJoin(cid, p.HostDisplayName)
	if err != nil {
		ctl.sendError(cid, core.EventCreateRoom, err)
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(cid)).Str("room", string(snap.Code)).Msg("room created")
}

func (ctl *SignalWSController) handleJoin(cid domain.ConnectionID, data json.RawMessage) {
	var p struct {
		RoomCode    string `json:"roomCode"`
		DisplayName string `json:"displayName"`
	}
	if err := decodeData(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad join payload")
		ctl.sendError(cid, core.EventJoinRoom, errBadPayload)
		return
	}
	code := domain.ParseRoomCode(p.RoomCode)
	if _, err := ctl.Orch.Join(code, cid, p.DisplayName); err != nil {
		ctl.sendError(cid, core.EventJoinRoom, err)
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(cid)).Str("room", string(code)).Msg("join")
}

// handleLeave leaves the current room; the socket stays open.
func (ctl *SignalWSController) handleLeave(cid domain.ConnectionID) {
	_, code, bound := ctl.Orch.WhoAmI(cid)
	ctl.Orch.Leave(cid)
	if bound {
		log.Info().Str("module", "signal").Str("conn", string(cid)).Str("room", string(code)).Msg("leave")
	}
	ctl.sendEvent(cid, core.EventRoomLeft, core.RoomLeftEvent{Code: code})
}
