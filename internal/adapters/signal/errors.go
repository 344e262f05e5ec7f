package signal

import (
	"errors"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Wire codes carried by the error event.
const (
	CodeRoomNotFound            = "room-not-found"
	CodeSenderNotInRoom         = "sender-not-in-room"
	CodeDuplicateJoin           = "duplicate-join"
	CodeCodeGenerationExhausted = "code-generation-exhausted"
	CodeInvalidDisplayName      = "invalid-display-name"
	CodeInvalidMessage          = "invalid-message"
	CodeInvalidSignal           = "invalid-signal"
	CodeBadPayload              = "bad-payload"
	CodeRateLimited             = "rate-limited"
	CodeUnknownEvent            = "unknown-event"
	CodeInternal                = "internal"
)

var (
	errBadPayload   = errors.New("malformed event")
	errRateLimited  = errors.New("too many events")
	errUnknownEvent = errors.New("unknown event type")
)

var wireCodes = []struct {
	err  error
	code string
}{
	{domain.ErrRoomNotFound, CodeRoomNotFound},
	{domain.ErrSenderNotInRoom, CodeSenderNotInRoom},
	{domain.ErrDuplicateJoinAttempt, CodeDuplicateJoin},
	{domain.ErrRoomCodeGenerationExhausted, CodeCodeGenerationExhausted},
	{domain.ErrDisplayNameEmpty, CodeInvalidDisplayName},
	{domain.ErrDisplayNameTooLong, CodeInvalidDisplayName},
	{domain.ErrMessageEmpty, CodeInvalidMessage},
	{domain.ErrMessageTooLong, CodeInvalidMessage},
	{domain.ErrInvalidSignalKind, CodeInvalidSignal},
	{domain.ErrInvalidSignal, CodeInvalidSignal},
	{errBadPayload, CodeBadPayload},
	{errRateLimited, CodeRateLimited},
	{errUnknownEvent, CodeUnknownEvent},
}

func toErrorEvent(err error) core.ErrorEvent {
	for _, wc := range wireCodes {
		if errors.Is(err, wc.err) {
			return core.ErrorEvent{Code: wc.code, Message: wc.err.Error()}
		}
	}
	return core.ErrorEvent{Code: CodeInternal, Message: "internal error"}
}
