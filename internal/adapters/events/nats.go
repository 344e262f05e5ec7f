// Package events publishes room lifecycle events to NATS subjects of the
// form <prefix>.rooms.<code>.<kind>, e.g. huddle.rooms.AB12CD.participant.joined.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
)

const DefaultSubjectPrefix = "huddle"

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(m *nats.Msg) error
}

type NATSPublisher struct {
	conn   Conn
	prefix string
}

func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Connect dials NATS with reconnects enabled for the life of the process.
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("huddle"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.PingInterval(20*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Str("module", "events.nats").Msg("disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("module", "events.nats").Str("url", c.ConnectedUrl()).Msg("reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	log.Info().Str("module", "events.nats").Str("url", conn.ConnectedUrl()).Msg("connected")
	return conn, nil
}

func (p *NATSPublisher) Subject(ev core.LifecycleEvent) string {
	return fmt.Sprintf("%s.rooms.%s.%s", p.prefix, ev.RoomCode, ev.Kind)
}

func (p *NATSPublisher) Publish(ctx context.Context, ev core.LifecycleEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode lifecycle event: %w", err)
	}
	msg := nats.NewMsg(p.Subject(ev))
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")
	msg.Header.Set("Huddle-Event", string(ev.Kind))
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}
