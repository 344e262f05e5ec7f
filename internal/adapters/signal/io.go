package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

func (ctl *SignalWSController) writePump(ctx context.Context, cid domain.ConnectionID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(cid)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				log.Debug().Str("module", "signal").Str("conn", string(cid)).Msg("writePump channel closed")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("writePump ping error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid domain.ConnectionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(cid)).Msg("readPump closing")
		ctl.Orch.OnDisconnect(cid)
		ctl.limiter.Forget(cid)
		cancel()
		c.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("conn", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
					log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(cid, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(cid domain.ConnectionID, data []byte) {
	env, err := core.Decode(data)
	if err != nil || env.Type == "" {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(cid)).Msg("bad json")
		ctl.sendError(cid, "", errBadPayload)
		return
	}
	if !ctl.limiter.Allow(cid) {
		ctl.sendError(cid, env.Type, errRateLimited)
		return
	}

	switch env.Type {
	case core.EventCreateRoom:
		ctl.handleCreateRoom(cid, env.Data)
	case core.EventJoinRoom:
		ctl.handleJoin(cid, env.Data)
	case core.EventLeaveRoom:
		ctl.handleLeave(cid)
	case core.EventSendMessage:
		ctl.handleSendMessage(cid, env.Data)
	case core.EventSignal:
		ctl.handleRelay(cid, env.Data)
	case core.EventMediaStatus, core.EventSpeakingStatus, core.EventQualityChanged, core.EventConnectionQuality:
		ctl.handlePeerStatus(cid, env.Type, env.Data)
	case core.EventPing:
		ctl.handlePing(cid)
	case core.EventWhoAmI:
		ctl.handleWhoAmI(cid)
	default:
		log.Warn().Str("module", "signal").Str("conn", string(cid)).Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(cid, env.Type, errUnknownEvent)
	}
}

// decodeData unmarshals an event's data, treating a missing object as empty.
func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (ctl *SignalWSController) sendEvent(cid domain.ConnectionID, eventType string, data any) {
	ctl.Orch.Reply(cid, eventType, data)
}

func (ctl *SignalWSController) sendError(cid domain.ConnectionID, eventType string, err error) {
	ev := toErrorEvent(err)
	ev.Event = eventType
	if !errors.Is(err, errRateLimited) {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(cid)).Str("event", eventType).Str("code", ev.Code).Msg("request rejected")
	}
	ctl.sendEvent(cid, core.EventError, ev)
}
