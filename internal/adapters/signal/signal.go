// Package signal is the websocket transport for the realtime channel. Each
// socket becomes one connection in the directory; inbound events are
// dispatched to the orchestrator and outbound frames leave through a
// bounded per-connection queue drained by a write pump.
package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/app/orch"
	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

const (
	DefaultReadLimit  = 32768
	DefaultPingPeriod = 54 * time.Second
	DefaultPongWait   = 60 * time.Second
	DefaultWriteWait  = 10 * time.Second
	DefaultSendBuffer = 64
)

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int

	// MessagesPerSecond <= 0 disables inbound rate limiting.
	MessagesPerSecond float64
	Burst             int
}

func (o *Options) applyDefaults() {
	if o.ReadLimit <= 0 {
		o.ReadLimit = DefaultReadLimit
	}
	if o.PingPeriod <= 0 {
		o.PingPeriod = DefaultPingPeriod
	}
	if o.PongWait <= 0 {
		o.PongWait = DefaultPongWait
	}
	if o.WriteWait <= 0 {
		o.WriteWait = DefaultWriteWait
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = DefaultSendBuffer
	}
}

type SignalWSController struct {
	Orch    *orch.Orchestrator
	opts    Options
	limiter *ConnRateLimiter
}

func NewSignalWSController(o *orch.Orchestrator, opts Options) *SignalWSController {
	opts.applyDefaults()
	return &SignalWSController{
		Orch:    o,
		opts:    opts,
		limiter: NewConnRateLimiter(opts.MessagesPerSecond, opts.Burst),
	}
}

// WsSignalConn implements core.SignalConnection over a gorilla socket.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, buffer)}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

// Close is safe to call from any goroutine, any number of times.
func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	cid := domain.NewConnectionID()
	logger := log.With().Str("module", "signal").Str("conn", string(cid)).Str("client", c.GetString("client_token")).Logger()

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error().Err(err).Msg("ws upgrade")
		return
	}
	logger.Info().Str("remote", c.ClientIP()).Msg("new WS connection")

	ws.SetReadLimit(ctl.opts.ReadLimit)
	conn := newWsSignalConn(ws, ctl.opts.SendBuffer)

	ctl.Orch.Connect(cid, conn)
	ctl.sendEvent(cid, core.EventWelcome, core.WelcomeEvent{ConnectionID: cid})

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, cid, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}
