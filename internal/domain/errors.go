package domain

import "errors"

var (
	ErrRoomNotFound                = errors.New("room not found")
	ErrSenderNotInRoom             = errors.New("sender not in room")
	ErrTargetNotConnected          = errors.New("target not connected")
	ErrRoomCodeGenerationExhausted = errors.New("room code generation exhausted")
	ErrDuplicateJoinAttempt        = errors.New("connection already bound to a room")
	ErrConnectionNotRegistered     = errors.New("connection not registered")

	ErrDisplayNameEmpty   = errors.New("display name empty")
	ErrDisplayNameTooLong = errors.New("display name too long")
	ErrMessageEmpty       = errors.New("message body empty")
	ErrMessageTooLong     = errors.New("message body too long")
	ErrInvalidSignalKind  = errors.New("invalid signal kind")
	ErrInvalidSignal      = errors.New("invalid signal envelope")
)
