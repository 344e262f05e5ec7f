package core

import "errors"

// Frame is a raw encoded event ready for the wire.
type Frame []byte

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// SignalConnection abstracts the realtime transport of one client.
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks: a full buffer yields ErrBackpressure.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
