package app

import (
	"errors"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a connection whose delivery failed.
type Policy interface {
	OnBackPressure(cid domain.ConnectionID, err error) BackpressureAction
}

// SimplePolicy kicks connections that cannot keep up. A kicked connection is
// closed; its transport then reports a disconnect like any other drop.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.ConnectionID, err error) BackpressureAction {
	if errors.Is(err, core.ErrBackpressure) {
		return KickMember
	}
	return DropFrame
}
