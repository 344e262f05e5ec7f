package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// PostMessage appends a user message from the room the connection is bound
// to and delivers it to every participant, the sender included.
func (o *Orchestrator) PostMessage(cid domain.ConnectionID, body string) (domain.Message, error) {
	body, err := domain.NormalizeBody(body, o.Limits.MaxMessageLen)
	if err != nil {
		return domain.Message{}, err
	}
	pid, code, ok := o.Registry.Resolve(cid)
	if !ok {
		return domain.Message{}, domain.ErrSenderNotInRoom
	}
	room, err := o.lockLive(code)
	if err != nil {
		return domain.Message{}, err
	}
	defer room.Unlock()

	agg := room.Aggregate()
	sender, ok := agg.Participant(pid)
	if !ok {
		return domain.Message{}, domain.ErrSenderNotInRoom
	}
	msg := o.Broadcast.Post(agg, sender, body)
	o.Mirror.SaveRoom(agg)
	o.publish(core.LifecycleMessagePosted, agg.Code, &sender, &msg)

	log.Debug().Str("module", "orch").Str("room", string(code)).Str("participant", string(pid)).Int("log_len", len(agg.Messages)).Msg("message posted")
	return msg, nil
}
